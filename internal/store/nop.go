package store

import "context"

// NopPageCache caches nothing. Used when the SQLite cache cannot be opened.
type NopPageCache struct{}

func NewNopPageCache() *NopPageCache { return &NopPageCache{} }

func (NopPageCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NopPageCache) Put(context.Context, string, string) error         { return nil }
func (NopPageCache) Reset(context.Context) error                       { return nil }
