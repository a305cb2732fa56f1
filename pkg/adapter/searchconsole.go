package adapter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

const (
	queriesCSV = "Forspørsler.csv"
	pagesCSV   = "Sider.csv"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SearchConsole loads search-performance exports. Batches are keyed by
// the YYYY-MM-DD folder name they were exported to.
type SearchConsole interface {
	// LoadBatches returns all dated batches. An empty map with a non-empty
	// flat batch means the export directory has no date structure.
	LoadBatches(ctx context.Context) (map[string]model.PerformanceBatch, model.PerformanceBatch, error)
}

type searchConsoleDir struct {
	dir string
}

// NewSearchConsole creates a loader over a directory of CSV exports.
func NewSearchConsole(dir string) SearchConsole {
	return &searchConsoleDir{dir: dir}
}

func (s *searchConsoleDir) LoadBatches(ctx context.Context) (map[string]model.PerformanceBatch, model.PerformanceBatch, error) {
	logger := logging.From(ctx)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.PerformanceBatch{}, nil
		}
		return nil, model.PerformanceBatch{}, goerr.Wrap(err, "failed to read export directory", goerr.V("dir", s.dir))
	}

	batches := map[string]model.PerformanceBatch{}
	for _, entry := range entries {
		if !entry.IsDir() || !datePattern.MatchString(entry.Name()) {
			continue
		}
		batch, err := s.loadFolder(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			// Degraded aggregation is better than none.
			logger.Warn("skipping unreadable batch", "date", entry.Name(), "error", err)
			continue
		}
		batches[entry.Name()] = batch
	}

	if len(batches) > 0 {
		return batches, model.PerformanceBatch{}, nil
	}

	// No date folders: treat the directory itself as one flat batch.
	flat, err := s.loadFolder(s.dir)
	if err != nil {
		logger.Warn("no readable search performance data", "dir", s.dir, "error", err)
		return nil, model.PerformanceBatch{}, nil
	}
	return nil, flat, nil
}

func (s *searchConsoleDir) loadFolder(dir string) (model.PerformanceBatch, error) {
	var batch model.PerformanceBatch

	queryRows, err := readCSVFile(filepath.Join(dir, queriesCSV))
	if err != nil {
		return batch, err
	}
	for _, row := range queryRows {
		if len(row) < 5 || row[0] == "" {
			continue
		}
		batch.Queries = append(batch.Queries, model.SearchPerformanceRow{
			Query:       row[0],
			Clicks:      parseCount(row[1]),
			Impressions: parseCount(row[2]),
			CTR:         parsePercent(row[3]),
			Position:    parseDecimal(row[4]),
		})
	}

	pageRows, err := readCSVFile(filepath.Join(dir, pagesCSV))
	if err == nil {
		for _, row := range pageRows {
			if len(row) < 5 || row[0] == "" {
				continue
			}
			batch.Pages = append(batch.Pages, model.PagePerformanceRow{
				Page:        row[0],
				Clicks:      parseCount(row[1]),
				Impressions: parseCount(row[2]),
				CTR:         parsePercent(row[3]),
				Position:    parseDecimal(row[4]),
			})
		}
	}

	return batch, nil
}

// readCSVFile returns the data rows of a headered CSV file.
func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open CSV", goerr.V("path", path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse CSV", goerr.V("path", path))
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseDecimal handles the locale's comma decimal separator.
func parseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parsePercent strips a trailing % before decimal parsing.
func parsePercent(s string) float64 {
	return parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}
