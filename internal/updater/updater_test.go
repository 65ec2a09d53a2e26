package updater

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brasslaw/vigia/internal/comunica"
	"github.com/brasslaw/vigia/internal/datajud"
	"github.com/brasslaw/vigia/internal/store"
)

// digitsA/B are the normalized forms of the seeded case numbers.
const (
	numeroA = "0001234-56.2024.5.02.0044"
	digitsA = "00012345620245020044"
	numeroB = "0009876-12.2023.5.02.0011"
	digitsB = "00098761220235020011"
)

type fakeIndex struct {
	queries   []string
	fallbacks []string
	results   map[string]datajud.Result
	fbResults map[string]datajud.FallbackResult
}

func (f *fakeIndex) Query(_ context.Context, digits, court string) datajud.Result {
	f.queries = append(f.queries, digits)
	return f.results[digits]
}

func (f *fakeIndex) QueryFallback(_ context.Context, digits, court string) datajud.FallbackResult {
	f.fallbacks = append(f.fallbacks, digits)
	return f.fbResults[digits]
}

type fakeFeed struct {
	queries []string
	results map[string]comunica.Result
}

func (f *fakeFeed) Query(_ context.Context, digits string) comunica.Result {
	f.queries = append(f.queries, digits)
	return f.results[digits]
}

func newTestUpdater(t *testing.T, idx movementQuerier, feed feedQuerier) (*Updater, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "vigia.db"), dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatalf("store.Migrate: %v", err)
	}
	u := New(Opts{
		Store:  s,
		Index:  idx,
		Feed:   feed,
		Parser: comunica.NewParser([]string{"RAPHAEL", "FERNANDA"}),
	})
	u.sleep = func(context.Context, time.Duration) error { return nil }
	u.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return u, s
}
