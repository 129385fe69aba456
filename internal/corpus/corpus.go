// Package corpus assembles the ordered set of résumés considered by one ranking request.
package corpus

import "resumematch/internal/domain"

// Corpus is an ordered mapping from résumé name to document.
// Replacing an existing name keeps its original position.
type Corpus struct {
	names []string
	docs  map[string]domain.Document
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{docs: make(map[string]domain.Document)}
}

// Merge builds a corpus from the persisted résumés followed by the ones supplied
// with the current request. A supplied document replaces a persisted one with the same name.
func Merge(persisted, supplied []domain.Document) *Corpus {
	c := New()
	for _, d := range persisted {
		c.Put(d)
	}
	for _, d := range supplied {
		c.Put(d)
	}
	return c
}

// Put inserts or replaces the document stored under d.Name.
func (c *Corpus) Put(d domain.Document) {
	if _, ok := c.docs[d.Name]; !ok {
		c.names = append(c.names, d.Name)
	}
	c.docs[d.Name] = d
}

// Get returns the document stored under name.
func (c *Corpus) Get(name string) (domain.Document, bool) {
	d, ok := c.docs[name]
	return d, ok
}

// Len returns the number of distinct names.
func (c *Corpus) Len() int { return len(c.names) }

// Names returns the names in corpus order.
func (c *Corpus) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Index returns the position of name, or -1.
func (c *Corpus) Index(name string) int {
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Documents returns the documents in corpus order.
func (c *Corpus) Documents() []domain.Document {
	out := make([]domain.Document, len(c.names))
	for i, n := range c.names {
		out[i] = c.docs[n]
	}
	return out
}
