package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// EvolutionLog appends one CSV row per generation.
// A nil *EvolutionLog discards every record.
type EvolutionLog struct {
	path          string
	file          *os.File
	headerWritten bool
}

// NewEvolutionLog truncates (or creates) the log at path.
// Returns nil if path is empty (logging disabled).
func NewEvolutionLog(path string) (*EvolutionLog, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &EvolutionLog{path: path, file: f}, nil
}

// Record writes one generation row. The header is written with the first row.
func (l *EvolutionLog) Record(stats GenerationStats) error {
	if l == nil {
		return nil
	}
	if l.file == nil {
		return fmt.Errorf("evolution log %s is closed", l.path)
	}

	records := []GenerationStats{stats}

	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.file); err != nil {
			return fmt.Errorf("writing evolution log: %w", err)
		}
		l.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, l.file); err != nil {
		return fmt.Errorf("writing evolution log: %w", err)
	}
	return nil
}

// Path returns the log file path.
func (l *EvolutionLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the log file.
func (l *EvolutionLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ReadEvolutionLog loads every row of a log written by EvolutionLog.
func ReadEvolutionLog(path string) ([]GenerationStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening evolution log: %w", err)
	}
	defer f.Close()

	var rows []GenerationStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing evolution log: %w", err)
	}
	return rows, nil
}
