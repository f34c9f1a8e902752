// Package loader reads the analyzed publication table from disk and
// normalizes it into core.Dataset form. The upstream analysis step
// writes the CSV; this package only parses and cleans it.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"pubscope/internal/core"
	"pubscope/internal/logger"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

// ErrMissingTopicColumn reports an input file without the
// dominant_topic column, which makes the whole dashboard meaningless.
// Callers must halt before any rendering step.
var ErrMissingTopicColumn = fmt.Errorf("required column %q not found in data; ensure the upstream analysis step ran and saved it", "dominant_topic")

// Loader parses publication CSVs and memoizes the result per path.
// The cache lives for the process lifetime; a changed file needs a
// restart to be picked up.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*core.Dataset
}

// New returns a Loader with an empty cache.
func New() *Loader {
	return &Loader{cache: make(map[string]*core.Dataset)}
}

// Load parses the CSV at path into a Dataset. Repeated calls with the
// same path return the already-parsed dataset without touching disk.
func (l *Loader) Load(path string) (*core.Dataset, error) {
	l.mu.Lock()
	if ds, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return ds, nil
	}
	l.mu.Unlock()

	ds, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = ds
	l.mu.Unlock()

	logger.Info("Loaded publication data", "path", path, "rows", len(ds.Articles), "min_year", ds.MinYear, "max_year", ds.MaxYear)
	return ds, nil
}

func parseFile(path string) (*core.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, guard per-field below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	dateIdx, ok := cols["publication_date"]
	if !ok {
		return nil, fmt.Errorf("required column %q not found in %s", "publication_date", path)
	}
	if _, ok := cols["dominant_topic"]; !ok {
		return nil, ErrMissingTopicColumn
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	ds := &core.Dataset{
		ID:       uuid.NewString(),
		Path:     path,
		LoadedAt: time.Now(),
	}

	dropped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// Rows with unparseable dates are dropped, not reported
		// individually; only the surviving row count is visible.
		rawDate := ""
		if dateIdx < len(record) {
			rawDate = strings.TrimSpace(record[dateIdx])
		}
		if rawDate == "" {
			dropped++
			continue
		}
		date, err := dateparse.ParseAny(rawDate)
		if err != nil {
			dropped++
			continue
		}

		article := core.Article{
			PublicationDate: date,
			PublicationYear: date.Year(),
			Title:           field(record, "title"),
			Abstract:        field(record, "abstract"),
			Authors:         field(record, "authors"),
			CombinedText:    field(record, "combined_text"),
			DominantTopic:   NormalizeTopic(field(record, "dominant_topic")),
		}

		if ds.MinYear == 0 || article.PublicationYear < ds.MinYear {
			ds.MinYear = article.PublicationYear
		}
		if article.PublicationYear > ds.MaxYear {
			ds.MaxYear = article.PublicationYear
		}
		ds.Articles = append(ds.Articles, article)
	}

	if dropped > 0 {
		logger.Debug("Dropped rows with unparseable dates", "path", path, "dropped", dropped)
	}
	return ds, nil
}

var topicUnderscorePattern = regexp.MustCompile(`Topic_\d+`)

// NormalizeTopic rewrites an upstream topic code into canonical
// "Topic <n>" form:
//
//   - numeric codes are 0-based indices and shift to 1-based labels
//     ("0" → "Topic 1"),
//   - "Topic_<n>" only has its separator rewritten, without a shift
//     ("Topic_3" → "Topic 3"),
//   - anything else, including already-canonical "Topic <n>", passes
//     through unchanged.
//
// The shift asymmetry between the two paths mirrors the upstream
// encoder and must not be unified.
func NormalizeTopic(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if k, err := strconv.Atoi(s); err == nil {
		return "Topic " + strconv.Itoa(k+1)
	}
	// Float-typed exports write integer codes as "3.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return "Topic " + strconv.Itoa(int(f)+1)
	}
	if topicUnderscorePattern.MatchString(s) {
		return strings.ReplaceAll(s, "Topic_", "Topic ")
	}
	return s
}
