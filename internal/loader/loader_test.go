package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test CSV: %v", err)
	}
	return path
}

func TestNormalizeTopic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numeric zero shifts to one-based", "0", "Topic 1"},
		{"numeric code shifts to one-based", "4", "Topic 5"},
		{"float-typed numeric code", "3.0", "Topic 4"},
		{"underscore separator rewritten without shift", "Topic_3", "Topic 3"},
		{"underscore zero stays zero", "Topic_0", "Topic 0"},
		{"canonical form is idempotent", "Topic 7", "Topic 7"},
		{"unknown code passes through", "weird", "weird"},
		{"surrounding whitespace trimmed", "  Topic 2 ", "Topic 2"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTopic(tt.in); got != tt.want {
				t.Errorf("NormalizeTopic(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTopicIdempotent(t *testing.T) {
	once := NormalizeTopic("2")
	twice := NormalizeTopic(once)
	if once != "Topic 3" || twice != once {
		t.Errorf("Normalization should be idempotent after the first pass: %q -> %q", once, twice)
	}
}

func TestLoadParsesRowsAndDerivesYear(t *testing.T) {
	path := writeCSV(t, `publication_date,title,abstract,authors,combined_text,dominant_topic
2019-03-14,First,About phages,Doe J,phage therapy study,Topic 1
2020-11-02,Second,About MRSA,Roe A,mrsa surveillance,0
`)

	ds, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ds.Articles) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(ds.Articles))
	}

	for _, a := range ds.Articles {
		if a.PublicationYear != a.PublicationDate.Year() {
			t.Errorf("Year %d does not match date %v", a.PublicationYear, a.PublicationDate)
		}
	}
	if ds.MinYear != 2019 || ds.MaxYear != 2020 {
		t.Errorf("Expected year bounds 2019-2020, got %d-%d", ds.MinYear, ds.MaxYear)
	}
	if ds.Articles[1].DominantTopic != "Topic 1" {
		t.Errorf("Numeric topic code should normalize to Topic 1, got %q", ds.Articles[1].DominantTopic)
	}
	if ds.ID == "" {
		t.Error("Dataset should carry an ID")
	}
}

func TestLoadDropsUnparseableDates(t *testing.T) {
	path := writeCSV(t, `publication_date,dominant_topic
2021-01-05,Topic 1
not-a-date,Topic 2
,Topic 3
2022-06-30,Topic 4
`)

	ds, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ds.Articles) != 2 {
		t.Errorf("Rows with bad dates should be dropped silently: want 2 rows, got %d", len(ds.Articles))
	}
}

func TestLoadMissingTopicColumnIsFatal(t *testing.T) {
	path := writeCSV(t, `publication_date,title
2021-01-05,No topics here
`)

	_, err := New().Load(path)
	if err == nil {
		t.Fatal("Expected an error for a file without dominant_topic")
	}
	if err != ErrMissingTopicColumn {
		t.Errorf("Expected ErrMissingTopicColumn, got %v", err)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := New().Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoadCachesPerPath(t *testing.T) {
	path := writeCSV(t, `publication_date,dominant_topic
2021-01-05,Topic 1
`)

	l := New()
	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Replace the file; the cached dataset must still be served.
	if err := os.WriteFile(path, []byte("publication_date,dominant_topic\n2022-02-02,Topic 2\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test CSV: %v", err)
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if first != second {
		t.Error("Repeated loads of the same path should return the cached dataset")
	}
	if second.Articles[0].PublicationYear != 2021 {
		t.Errorf("Cache should not observe the rewritten file, got year %d", second.Articles[0].PublicationYear)
	}
}

func TestLoadToleratesRaggedRows(t *testing.T) {
	path := writeCSV(t, `publication_date,title,dominant_topic
2021-01-05,Short row,Topic 1
2021-02-06,Long row,Topic 2,extra-field
`)

	ds, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ds.Articles) != 2 {
		t.Errorf("Expected ragged rows to survive, got %d rows", len(ds.Articles))
	}
}
