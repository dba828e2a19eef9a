package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/dodge/components"
)

func TestEvolutionLogWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evolution.csv")
	log, err := NewEvolutionLog(path)
	if err != nil {
		t.Fatalf("NewEvolutionLog: %v", err)
	}

	for gen := 0; gen < 3; gen++ {
		stats := GenerationStats{
			Generation:  gen,
			BestFitness: float64(gen * 2),
			MeanFitness: 0.5,
			Champion:    components.Genome{RepulsionRadius: 100},
		}
		if err := log.Record(stats); err != nil {
			t.Fatalf("Record(%d): %v", gen, err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if lines[0] != "generation,best_fitness,mean_fitness" {
		t.Errorf("header = %q", lines[0])
	}

	rows, err := ReadEvolutionLog(path)
	if err != nil {
		t.Fatalf("ReadEvolutionLog: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i, r := range rows {
		if r.Generation != i || r.BestFitness != float64(i*2) || r.MeanFitness != 0.5 {
			t.Errorf("row %d = %+v", i, r)
		}
	}
}

func TestEvolutionLogTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evolution.csv")
	if err := os.WriteFile(path, []byte("stale\nrows\nfrom\nbefore\n"), 0644); err != nil {
		t.Fatal(err)
	}

	log, err := NewEvolutionLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Record(GenerationStats{Generation: 0, BestFitness: 1}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	rows, err := ReadEvolutionLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}

func TestNilEvolutionLog(t *testing.T) {
	log, err := NewEvolutionLog("")
	if err != nil || log != nil {
		t.Fatalf("NewEvolutionLog(\"\") = %v, %v", log, err)
	}
	if err := log.Record(GenerationStats{}); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if log.Path() != "" {
		t.Error("nil Path not empty")
	}
}

func TestReadEvolutionLogMissing(t *testing.T) {
	if _, err := ReadEvolutionLog(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing log")
	}
}
