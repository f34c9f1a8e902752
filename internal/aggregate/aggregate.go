// Package aggregate computes the group-by-count views behind the
// dashboard charts.
package aggregate

import (
	"sort"

	"pubscope/internal/catalog"
	"pubscope/internal/core"
)

// ByYearAndTopic counts articles per (year, topic) pair. Results are
// sorted by year ascending, then by topic sort key, which is the
// stacking order of the volume chart. An empty input yields an empty
// slice.
func ByYearAndTopic(articles []core.Article, cat *catalog.Catalog) []core.YearTopicCount {
	type cell struct {
		year  int
		topic string
	}
	counts := make(map[cell]int)
	for _, a := range articles {
		counts[cell{a.PublicationYear, a.DominantTopic}]++
	}

	out := make([]core.YearTopicCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, core.YearTopicCount{
			Year:    c.year,
			Topic:   c.topic,
			Count:   n,
			Label:   cat.Describe(c.topic),
			SortKey: catalog.SortKey(c.topic),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].SortKey < out[j].SortKey
	})
	return out
}

// ByTopic counts articles per topic, sorted by count descending with
// the topic sort key as tie-break. An empty input yields an empty
// slice.
func ByTopic(articles []core.Article, cat *catalog.Catalog) []core.TopicCount {
	counts := make(map[string]int)
	for _, a := range articles {
		counts[a.DominantTopic]++
	}

	out := make([]core.TopicCount, 0, len(counts))
	for topic, n := range counts {
		out = append(out, core.TopicCount{
			Topic:   topic,
			Count:   n,
			Label:   cat.Describe(topic),
			SortKey: catalog.SortKey(topic),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].SortKey < out[j].SortKey
	})
	return out
}

// Years returns the distinct years present in the counts, ascending.
func Years(counts []core.YearTopicCount) []int {
	seen := make(map[int]bool)
	var years []int
	for _, c := range counts {
		if !seen[c.Year] {
			seen[c.Year] = true
			years = append(years, c.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Total sums the per-topic counts; it always equals the filtered row
// count the counts were computed from.
func Total(counts []core.TopicCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
