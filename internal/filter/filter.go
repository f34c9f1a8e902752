// Package filter narrows the loaded publication table to the rows
// matching the active dashboard criteria.
package filter

import (
	"strings"

	"pubscope/internal/core"
)

// Apply returns the articles satisfying every criterion. The input
// slice is never mutated; the result is a fresh slice.
//
// The three predicates are conjunctive and independent:
//
//  1. publication year within [MinYear, MaxYear], both inclusive;
//  2. when Keyword is non-empty, CombinedText contains it
//     case-insensitively — rows with empty CombinedText never match;
//  3. when the topic set is non-empty, DominantTopic is a member.
//     An empty topic set matches nothing. The UI starts with every
//     topic selected, so this only surfaces when a user deselects
//     all topics.
func Apply(articles []core.Article, c core.Criteria) []core.Article {
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	out := make([]core.Article, 0, len(articles))
	for _, a := range articles {
		if a.PublicationYear < c.MinYear || a.PublicationYear > c.MaxYear {
			continue
		}
		if keyword != "" {
			if a.CombinedText == "" || !strings.Contains(strings.ToLower(a.CombinedText), keyword) {
				continue
			}
		}
		if !c.Topics[a.DominantTopic] {
			continue
		}
		out = append(out, a)
	}
	return out
}
