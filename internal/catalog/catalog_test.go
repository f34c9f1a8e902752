package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogShape(t *testing.T) {
	cat := Default()
	if cat.Len() != 10 {
		t.Fatalf("Default catalog should have 10 topics, got %d", cat.Len())
	}

	keys := cat.SortedKeys()
	if keys[0] != "Topic 1" || keys[9] != "Topic 10" {
		t.Errorf("Keys should be ordered by numeric suffix, got first=%q last=%q", keys[0], keys[9])
	}
	// "Topic 10" must sort after "Topic 9", not lexicographically after "Topic 1".
	if keys[8] != "Topic 9" {
		t.Errorf("Expected Topic 9 before Topic 10, got %q at position 9", keys[8])
	}
}

func TestDescribeFallsBackToUnknown(t *testing.T) {
	cat := Default()
	if got := cat.Describe("Topic 3"); got == UnknownLabel || got == "" {
		t.Errorf("Cataloged key should have a real description, got %q", got)
	}
	if got := cat.Describe("Topic 99"); got != UnknownLabel {
		t.Errorf("Unmapped key should describe as %q, got %q", UnknownLabel, got)
	}
}

func TestAllKeysIsASet(t *testing.T) {
	cat := Default()
	set := cat.AllKeys()
	if len(set) != cat.Len() {
		t.Errorf("AllKeys size %d should match Len %d", len(set), cat.Len())
	}
	if !set["Topic 5"] {
		t.Error("AllKeys should contain Topic 5")
	}
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"Topic 1", 1},
		{"Topic 10", 10},
		{"Topic 0", 0},
	}
	for _, tt := range tests {
		if got := SortKey(tt.key); got != tt.want {
			t.Errorf("SortKey(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
	if SortKey("weird") <= 10 {
		t.Error("Non-numeric keys should sort after cataloged topics")
	}
}

func TestNewDeduplicatesAndOrders(t *testing.T) {
	cat := New([]Entry{
		{Key: "Topic 2", Label: "second"},
		{Key: "Topic 1", Label: "first"},
		{Key: "Topic 2", Label: "second again"},
		{Key: "", Label: "dropped"},
	})
	if cat.Len() != 2 {
		t.Fatalf("Expected 2 entries after dedup, got %d", cat.Len())
	}
	if keys := cat.SortedKeys(); keys[0] != "Topic 1" {
		t.Errorf("Expected Topic 1 first, got %q", keys[0])
	}
	if got := cat.Describe("Topic 2"); got != "second again" {
		t.Errorf("Later duplicate should win, got %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `- key: "Topic 1"
  label: "Alpha"
- key: "Topic 2"
  label: "Beta"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write catalog file: %v", err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", cat.Len())
	}
	if got := cat.Describe("Topic 2"); got != "Beta" {
		t.Errorf("Describe(Topic 2) = %q, want Beta", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing catalog file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("[]\n"), 0644); err != nil {
		t.Fatalf("Failed to write empty catalog: %v", err)
	}
	if _, err := LoadFile(empty); err == nil {
		t.Error("Expected error for an empty catalog file")
	}
}

func TestColorsAreStable(t *testing.T) {
	if ColorHex("Topic 1") != ColorHex("Topic 1") {
		t.Error("ColorHex should be deterministic")
	}
	if ColorHex("Topic 1") == ColorHex("Topic 2") {
		t.Error("Adjacent topics should not share a color")
	}
	if ColorHex("weird") != "#888888" {
		t.Errorf("Unmapped keys should use the unknown color, got %q", ColorHex("weird"))
	}
	if ColorANSI("Topic 3") == "" {
		t.Error("ColorANSI should return a terminal color")
	}
}
