package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures a batch run
type Options struct {
	InputDir  string
	OutputDir string
	Formats   []string // file extensions, dot optional, case-insensitive
	Method    Method
}

// RunStats aggregates the outcome of a batch run
type RunStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// Run processes every matching file in the input directory sequentially and
// returns aggregate stats. A missing input directory or an empty discovery
// yields zero stats; per-file failures are logged and the batch continues.
func Run(logger *log.Logger, opts Options) RunStats {
	var stats RunStats

	if fi, err := os.Stat(opts.InputDir); err != nil || !fi.IsDir() {
		logger.Errorf("input directory %q does not exist", opts.InputDir)
		return stats
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		logger.Errorf("cannot create output directory %q: %v", opts.OutputDir, err)
		return stats
	}

	formats := NormalizeFormats(opts.Formats)
	files, err := Discover(opts.InputDir, formats)
	if err != nil {
		logger.Errorf("file discovery failed: %v", err)
		return stats
	}
	if len(files) == 0 {
		logger.Warnf("no files found in %q with formats %v", opts.InputDir, formats)
		return stats
	}

	stats.Total = len(files)
	logger.Infof("found %d files to process", stats.Total)

	for i, path := range files {
		name := filepath.Base(path)
		logger.Infof("[%d/%d] %s", i+1, stats.Total, name)

		outputPath := filepath.Join(opts.OutputDir, name)
		if err := ProcessFile(logger, path, outputPath, opts.Method); err != nil {
			logger.Errorf("error processing %s: %v", path, err)
			stats.Failed++
			continue
		}

		logger.Debugf("successfully processed: %s", name)
		stats.Succeeded++
	}

	logger.Infof("processing complete: %d/%d files processed successfully",
		stats.Succeeded, stats.Total)
	return stats
}

// NormalizeFormats trims whitespace, strips leading dots and lowercases the
// requested extensions, dropping empties and duplicates.
func NormalizeFormats(formats []string) []string {
	seen := make(map[string]bool)
	var normalized []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		normalized = append(normalized, f)
	}
	return normalized
}

// Discover lists files in inputDir whose extension matches one of the
// normalized formats, case-insensitively and without descending into
// subdirectories. Results follow format order, then name order within a
// format, so runs are reproducible.
func Discover(inputDir string, formats []string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, format := range formats {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.TrimPrefix(filepath.Ext(entry.Name()), ".")
			if strings.EqualFold(ext, format) {
				files = append(files, filepath.Join(inputDir, entry.Name()))
			}
		}
	}
	return files, nil
}

// MatchesFormat reports whether a filename has one of the normalized
// extensions. Used by watch mode to filter events.
func MatchesFormat(name string, formats []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, format := range formats {
		if strings.EqualFold(ext, format) {
			return true
		}
	}
	return false
}
