// Package csvwriter serializes collected offers to timestamped CSV files.
package csvwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/K37722/trumfscraper/internal/models"
)

// Header is the fixed CSV header row.
var Header = []string{"butikk", "tittel", "pris", "ekstrainfo"}

// timestampLayout produces <YYYYMMDD>-<HHMMSS>.
const timestampLayout = "20060102-150405"

// Write creates dir if absent and writes one CSV file named
// <prefix>-<timestamp>.csv with the header row and one row per offer in
// input order. When the target name already exists (two runs within the
// same second) a numeric suffix is appended instead of overwriting.
// Returns the path of the written file.
func Write(offers []models.Offer, dir, prefix string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	stem := fmt.Sprintf("%s-%s", prefix, now.Format(timestampLayout))

	file, path, err := createUnique(dir, stem)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, offer := range offers {
		if err := writer.Write(offer.Row()); err != nil {
			return "", fmt.Errorf("failed to write offer row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}

	return path, nil
}

// createUnique opens <stem>.csv exclusively, falling back to <stem>-1.csv,
// <stem>-2.csv and so on when the name is taken.
func createUnique(dir, stem string) (*os.File, string, error) {
	for attempt := 0; ; attempt++ {
		name := stem + ".csv"
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d.csv", stem, attempt)
		}

		path := filepath.Join(dir, name)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, path, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create output file %s: %w", path, err)
		}
	}
}
