package model

import "strings"

// Catalog maps model names to the largest output token budget we allow for them.
type Catalog struct {
	ceilings map[string]int
	fallback int
}

// NewCatalog builds a catalog. Models missing from ceilings get the fallback ceiling.
func NewCatalog(ceilings map[string]int, fallback int) *Catalog {
	c := &Catalog{
		ceilings: make(map[string]int, len(ceilings)),
		fallback: fallback,
	}
	for name, ceiling := range ceilings {
		c.ceilings[strings.ToLower(name)] = ceiling
	}
	return c
}

func (c *Catalog) Ceiling(name string) int {
	if ceiling, ok := c.ceilings[strings.ToLower(strings.TrimSpace(name))]; ok && ceiling > 0 {
		return ceiling
	}
	return c.fallback
}

// Clamp returns def when requested is not positive, otherwise requested capped
// at the model ceiling.
func (c *Catalog) Clamp(name string, requested, def int) int {
	if requested <= 0 {
		requested = def
	}
	return min(requested, c.Ceiling(name))
}
