package pipeline

import (
	"sync"

	"github.com/amishk599/aijobradar/internal/model"
)

// CompanyCache is the run-scoped company store. The first record inserted
// for a name wins; every later lookup gets the same pointer.
type CompanyCache struct {
	mu sync.Mutex
	m  map[string]*model.CompanyInfo
}

// NewCompanyCache wraps m, which is used as the backing map.
func NewCompanyCache(m map[string]*model.CompanyInfo) *CompanyCache {
	if m == nil {
		m = make(map[string]*model.CompanyInfo)
	}
	return &CompanyCache{m: m}
}

// GetOrInsert returns the cached record for name. On a miss build is called
// under the lock and its result stored. inserted reports a miss.
func (c *CompanyCache) GetOrInsert(name string, build func() *model.CompanyInfo) (info *model.CompanyInfo, inserted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if info, ok := c.m[name]; ok {
		return info, false
	}
	info = build()
	c.m[name] = info
	return info, true
}

// Len returns the number of cached companies.
func (c *CompanyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
