package corpus

import (
	"testing"

	"resumematch/internal/domain"
)

func TestMerge_SuppliedOverridesPersisted(t *testing.T) {
	c := Merge(
		[]domain.Document{
			{Name: "r1", Text: "old text", SourcePath: "/p1"},
			{Name: "r0", Text: "other", SourcePath: "/p0"},
		},
		[]domain.Document{
			{Name: "r1", Text: "new text", SourcePath: "/p2"},
			{Name: "r2", Text: "fresh", SourcePath: "/p3"},
		},
	)
	if c.Len() != 3 {
		t.Fatalf("expected 3 names, got %d", c.Len())
	}
	d, ok := c.Get("r1")
	if !ok || d.Text != "new text" || d.SourcePath != "/p2" {
		t.Fatalf("expected supplied r1, got %+v", d)
	}
	expect := []string{"r1", "r0", "r2"}
	got := c.Names()
	for i := range expect {
		if got[i] != expect[i] {
			t.Fatalf("expected order %v, got %v", expect, got)
		}
	}
	if c.Index("r2") != 2 || c.Index("missing") != -1 {
		t.Fatalf("unexpected index lookup")
	}
}

func TestMerge_Empty(t *testing.T) {
	c := Merge(nil, nil)
	if c.Len() != 0 || len(c.Documents()) != 0 {
		t.Fatalf("expected empty corpus")
	}
}

func TestCorpus_DocumentsAligned(t *testing.T) {
	c := New()
	c.Put(domain.Document{Name: "a", Text: "x"})
	c.Put(domain.Document{Name: "b"})
	c.Put(domain.Document{Name: "a", Text: "y"})
	docs := c.Documents()
	if len(docs) != 2 || docs[0].Name != "a" || docs[0].Text != "y" || docs[1].Name != "b" {
		t.Fatalf("unexpected documents %+v", docs)
	}
	names := c.Names()
	names[0] = "mutated"
	if c.Names()[0] != "a" {
		t.Fatalf("Names must return a copy")
	}
}
