package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadHighScore reads the interactive high score. A missing or malformed
// file counts as zero.
func LoadHighScore(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return v
}

// SaveHighScore overwrites the high score file.
func SaveHighScore(path string, score int) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(score)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
