//go:build sqlite

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/dodge/components"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "genomes.db")

	s := NewSQLiteStore(dbPath)
	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("empty Load = ok %v err %v", ok, err)
	}

	first := Record{Genome: components.Genome{RepulsionRadius: 90, RepulsionWeight: 1.5, PlayerSpeed: 5}, Fitness: 4}
	second := Record{Genome: components.Genome{RepulsionRadius: 130, RepulsionWeight: 0.7, PlayerSpeed: 8}, Fitness: 9}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok %v err %v", ok, err)
	}
	if got != second {
		t.Errorf("loaded %+v, want %+v", got, second)
	}

	history, err := s.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0] != first {
		t.Errorf("history = %+v", history)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "genomes.db"))
	if err := s.Save(context.Background(), Record{}); err == nil {
		t.Error("expected error before Init")
	}
}
