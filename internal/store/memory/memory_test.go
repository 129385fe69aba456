package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"resumematch/internal/domain"
)

func TestStorage_UpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	now := time.Now()
	for _, d := range []domain.Document{
		{Name: "a", Text: "one"},
		{Name: "b", Text: "two"},
		{Name: "a", Text: "three", SourcePath: "/a"},
	} {
		if err := s.Upsert(ctx, d, "h", now); err != nil {
			t.Fatal(err)
		}
	}
	all, _ := s.LoadAll(ctx)
	if len(all) != 2 || all[0].Name != "a" || all[0].Text != "three" || all[1].Name != "b" {
		t.Fatalf("unexpected contents %+v", all)
	}
}

func TestStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	for _, n := range []string{"a", "b", "c"} {
		_ = s.Upsert(ctx, domain.Document{Name: n}, "", time.Now())
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := s.Get(ctx, "c")
	if err != nil || got.Name != "c" {
		t.Fatalf("index not rebuilt: %+v %v", got, err)
	}
	all, _ := s.LoadAll(ctx)
	if len(all) != 2 || all[0].Name != "b" {
		t.Fatalf("unexpected contents %+v", all)
	}
}
