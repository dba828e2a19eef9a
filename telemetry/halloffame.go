package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pthm-cable/dodge/components"
)

// HallEntry is one genome that made it into the hall of fame.
type HallEntry struct {
	Genome     components.Genome `json:"genome"`
	Fitness    float64           `json:"fitness"`
	Generation int               `json:"generation"`
}

// HallOfFame keeps the best distinct genomes of a run, sorted by fitness.
// An elite genome re-evaluated in a later generation keeps only its best score.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a scored genome to the hall.
// Returns true if the hall changed.
func (hof *HallOfFame) Consider(g components.Genome, fitness float64, generation int) bool {
	for i, e := range hof.entries {
		if e.Genome != g {
			continue
		}
		if fitness <= e.Fitness {
			return false
		}
		hof.entries = append(hof.entries[:i], hof.entries[i+1:]...)
		break
	}
	return hof.insertEntry(HallEntry{Genome: g, Fitness: fitness, Generation: generation})
}

// insertEntry adds an entry, maintaining sorted order by fitness.
// Ties keep the earlier entry first. If the hall is full, the lowest-fitness
// entry is removed.
func (hof *HallOfFame) insertEntry(entry HallEntry) bool {
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})

	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns a copy of the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, len(hof.entries))
	copy(out, hof.entries)
	return out
}

// Best returns the top entry.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// MarshalJSON serializes the hall as a JSON array, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// WriteJSON saves the hall of fame to path.
func (hof *HallOfFame) WriteJSON(path string) error {
	if hof == nil {
		return nil
	}
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
