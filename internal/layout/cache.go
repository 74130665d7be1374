package layout

// cache keys on type descriptors; equal types share a layout.
type cache struct {
	byDesc map[string]TypeLayout
}

func newCache() *cache {
	return &cache{byDesc: make(map[string]TypeLayout, 32)}
}

func (c *cache) get(desc string) (TypeLayout, bool) {
	if c == nil {
		return TypeLayout{}, false
	}
	l, ok := c.byDesc[desc]
	return l, ok
}

func (c *cache) put(desc string, l TypeLayout) {
	if c == nil {
		return
	}
	c.byDesc[desc] = l
}
