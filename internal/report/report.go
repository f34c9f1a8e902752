// Package report renders a filtered dashboard view as a markdown
// document for non-interactive use.
package report

import (
	"fmt"
	"strings"

	"pubscope/internal/aggregate"
	"pubscope/internal/catalog"
	"pubscope/internal/core"
	"pubscope/internal/filter"
	"pubscope/internal/wordcloud"
)

// Options controls the shape of the generated report.
type Options struct {
	PreviewLimit   int // Max preview rows; 0 disables the preview section
	WordCloudLimit int // Max entries in the top-words section
}

// Generate filters the dataset with the given criteria and formats
// the resulting aggregates as markdown.
func Generate(ds *core.Dataset, c core.Criteria, cat *catalog.Catalog, opts Options) string {
	rows := filter.Apply(ds.Articles, c)

	var b strings.Builder
	b.WriteString("# Publication Trend Report\n\n")
	fmt.Fprintf(&b, "**Source:** %s\n", ds.Path)
	fmt.Fprintf(&b, "**Years:** %d-%d\n", c.MinYear, c.MaxYear)
	if kw := strings.TrimSpace(c.Keyword); kw != "" {
		fmt.Fprintf(&b, "**Keyword:** %s\n", kw)
	}
	fmt.Fprintf(&b, "**Topics selected:** %d of %d\n", len(c.SelectedTopics()), cat.Len())
	fmt.Fprintf(&b, "**Articles found:** %d\n\n", len(rows))

	if len(rows) == 0 {
		b.WriteString("No articles found with the selected filters. Try adjusting the filters.\n")
		return b.String()
	}

	writeVolumeSection(&b, rows, cat)
	writeDistributionSection(&b, rows, cat)
	writeTopWordsSection(&b, rows, opts.WordCloudLimit)
	if opts.PreviewLimit > 0 {
		writePreviewSection(&b, rows, opts.PreviewLimit)
	}
	return b.String()
}

func writeVolumeSection(b *strings.Builder, rows []core.Article, cat *catalog.Catalog) {
	b.WriteString("## Publication Volume by Year and Topic\n\n")

	counts := aggregate.ByYearAndTopic(rows, cat)
	perYear := make(map[int]int)
	for _, c := range counts {
		perYear[c.Year] += c.Count
	}

	for _, year := range aggregate.Years(counts) {
		fmt.Fprintf(b, "**%d** (%d articles)\n", year, perYear[year])
		for _, c := range counts {
			if c.Year != year {
				continue
			}
			fmt.Fprintf(b, "- %s — %s: %d\n", c.Topic, c.Label, c.Count)
		}
		b.WriteString("\n")
	}
}

func writeDistributionSection(b *strings.Builder, rows []core.Article, cat *catalog.Catalog) {
	b.WriteString("## Distribution of Articles by Topic\n\n")

	counts := aggregate.ByTopic(rows, cat)
	maxCount := 0
	for _, c := range counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	for _, c := range counts {
		bar := strings.Repeat("█", scaled(c.Count, maxCount, 30))
		fmt.Fprintf(b, "- %-9s %4d %s\n", c.Topic, c.Count, bar)
	}
	b.WriteString("\n")

	b.WriteString("Legend:\n")
	for _, key := range cat.SortedKeys() {
		fmt.Fprintf(b, "- **%s:** %s\n", key, cat.Describe(key))
	}
	b.WriteString("\n")
}

func writeTopWordsSection(b *strings.Builder, rows []core.Article, limit int) {
	b.WriteString("## Top Words\n\n")

	words := wordcloud.Build(rows, limit)
	if len(words) == 0 {
		b.WriteString("No text available to summarize for the current filters.\n\n")
		return
	}
	var parts []string
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("%s (%d)", w.Text, w.Count))
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("\n\n")
}

func writePreviewSection(b *strings.Builder, rows []core.Article, limit int) {
	b.WriteString("## Article Preview\n\n")
	b.WriteString("| Year | Title | Topic | Date | Authors |\n")
	b.WriteString("|------|-------|-------|------|--------|\n")

	preview := rows
	if len(preview) > limit {
		preview = preview[:limit]
	}
	for _, a := range preview {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			a.PublicationYear,
			truncate(a.Title, 60),
			a.DominantTopic,
			a.PublicationDate.Format("2006-01-02"),
			truncate(a.Authors, 40))
	}
	b.WriteString("\n")
}

func scaled(count, max, width int) int {
	if max == 0 {
		return 0
	}
	n := count * width / max
	if n == 0 && count > 0 {
		n = 1
	}
	return n
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
