package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/dodge/components"
)

func TestJSONFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "best_agent.json")
	s := NewJSONFileStore(path, defaults)
	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("empty store Load = ok %v err %v", ok, err)
	}

	rec := Record{Genome: components.Genome{RepulsionRadius: 150, RepulsionWeight: 0.9, PlayerSpeed: 8}, Fitness: 21}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok %v err %v", ok, err)
	}
	if got != rec {
		t.Errorf("loaded %+v, want %+v", got, rec)
	}
	if g := LoadGenome(s.Path(), defaults); g != rec.Genome {
		t.Errorf("LoadGenome = %+v, want %+v", g, rec.Genome)
	}
}

func TestJSONFileStoreCorrupt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "best_agent.json")
	if err := os.WriteFile(path, []byte("{{"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewJSONFileStore(path, defaults)

	if _, _, err := s.Load(ctx); err == nil {
		t.Fatal("expected decode error")
	}
	rec, err := LoadOrDefault(ctx, s, defaults)
	if err == nil {
		t.Error("LoadOrDefault hid the decode error")
	}
	if rec.Genome != defaults {
		t.Errorf("LoadOrDefault = %+v, want defaults", rec.Genome)
	}
}

func TestJSONFileStoreInitRequiresPath(t *testing.T) {
	if err := NewJSONFileStore("", defaults).Init(context.Background()); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Init(ctx); err != nil {
		t.Fatal(err)
	}

	rec, err := LoadOrDefault(ctx, s, defaults)
	if err != nil || rec.Genome != defaults {
		t.Fatalf("empty LoadOrDefault = %+v, %v", rec, err)
	}

	first := Record{Genome: components.Genome{RepulsionRadius: 61}, Fitness: 1}
	second := Record{Genome: components.Genome{RepulsionRadius: 199}, Fitness: 2}
	_ = s.Save(ctx, first)
	_ = s.Save(ctx, second)

	got, ok, _ := s.Load(ctx)
	if !ok || got != second {
		t.Errorf("Load = %+v, want latest %+v", got, second)
	}
	history, _ := s.History(ctx)
	if len(history) != 2 || history[0] != first {
		t.Errorf("History = %+v", history)
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"", false},
		{"json", false},
		{"memory", false},
		{"unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s, err := NewStore(tt.kind, filepath.Join(t.TempDir(), "g.json"), defaults)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && s == nil {
				t.Fatal("expected non-nil store")
			}
			if err := CloseIfSupported(s); err != nil {
				t.Errorf("close: %v", err)
			}
		})
	}
}
