package config

import "sync"

// Cache remembers discovery results per directory. An empty path records
// that no config file exists at or above that directory.
type Cache struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]string),
	}
}

func (c *Cache) Get(dir string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[dir]
	return val, ok
}

func (c *Cache) Set(dir, configPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[dir] = configPath
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]string)
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
