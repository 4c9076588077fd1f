package docfill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout renders as e.g. "2020-08-19_151221".
const timestampLayout = "2006-01-02_150405"

// TimestampFilename inserts the local timestamp before the filename's
// extension: "out/letter.docx" becomes "out/letter_2020-08-19_151221.docx".
func TimestampFilename(filename string, t time.Time) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return base + "_" + t.Format(timestampLayout) + ext
}

// ensureDir creates the parent directory of path if it is missing.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}
	return nil
}
