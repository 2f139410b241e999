package pipeline

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amishk599/aijobradar/internal/model"
)

func TestCompanyCache_FirstInsertWins(t *testing.T) {
	backing := map[string]*model.CompanyInfo{}
	cache := NewCompanyCache(backing)

	first, inserted := cache.GetOrInsert("Acme", func() *model.CompanyInfo {
		return &model.CompanyInfo{Name: "Acme", Description: "first"}
	})
	assert.True(t, inserted)

	second, inserted := cache.GetOrInsert("Acme", func() *model.CompanyInfo {
		t.Fatal("build must not run on a hit")
		return nil
	})
	assert.False(t, inserted)
	assert.Same(t, first, second)
	assert.Equal(t, "first", second.Description)
	assert.Same(t, first, backing["Acme"])
}

func TestCompanyCache_ConcurrentLookupsBuildOnce(t *testing.T) {
	cache := NewCompanyCache(nil)
	var builds atomic.Int32
	results := make([]*model.CompanyInfo, 50)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = cache.GetOrInsert("Nordic AI Lab", func() *model.CompanyInfo {
				builds.Add(1)
				return &model.CompanyInfo{Name: "Nordic AI Lab"}
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, 1, cache.Len())
	for _, info := range results {
		assert.Same(t, results[0], info)
	}
}
