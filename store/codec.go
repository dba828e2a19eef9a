package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pthm-cable/dodge/components"
)

// EncodeRecord serializes rec as a flat JSON object.
func EncodeRecord(rec Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// DecodeRecord parses a genome record field by field. A field that is
// missing or not a number keeps its value from defaults; only a payload that
// is not a JSON object is an error.
func DecodeRecord(data []byte, defaults components.Genome) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Record{Genome: defaults}, fmt.Errorf("decoding genome record: %w", err)
	}

	rec := Record{Genome: defaults}
	decodeField(fields, "repulsion_radius", &rec.RepulsionRadius)
	decodeField(fields, "repulsion_weight", &rec.RepulsionWeight)
	decodeField(fields, "player_speed", &rec.PlayerSpeed)
	decodeField(fields, "fitness", &rec.Fitness)
	return rec, nil
}

func decodeField(fields map[string]json.RawMessage, key string, dst *float64) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// LoadGenome reads the genome file at path. A missing or unparsable file
// yields defaults, and missing fields default individually.
func LoadGenome(path string, defaults components.Genome) components.Genome {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}
	rec, err := DecodeRecord(data, defaults)
	if err != nil {
		return defaults
	}
	return rec.Genome
}
