package utils

import (
	"fmt"
	"strings"
)

// Slugify lowercases and replaces whitespace runs with hyphens.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(s), "-")
	return s
}

// SlugSet hands out slugs and disambiguates collisions: two distinct names
// that normalize to the same slug get "-2", "-3", ... suffixes in the order
// they are seen. The same name always maps back to the same slug.
type SlugSet struct {
	byName map[string]string
	taken  map[string]bool
}

func NewSlugSet() *SlugSet {
	return &SlugSet{
		byName: make(map[string]string),
		taken:  make(map[string]bool),
	}
}

func (ss *SlugSet) Slug(name string) string {
	if slug, ok := ss.byName[name]; ok {
		return slug
	}

	base := Slugify(name)
	slug := base
	for n := 2; ss.taken[slug]; n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}

	ss.byName[name] = slug
	ss.taken[slug] = true
	return slug
}
