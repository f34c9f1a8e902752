// Package wordcloud turns the free text of a filtered article set into
// ranked word weights for the word-cloud panels.
package wordcloud

import (
	"sort"
	"strings"
	"unicode"

	"pubscope/internal/core"
)

// Word is one entry of the cloud, ranked by frequency.
type Word struct {
	Text   string  `json:"text"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"` // Count normalized to the most frequent word, (0, 1]
}

// Build tokenizes the concatenated CombinedText of the articles and
// returns the limit most frequent non-stopword tokens, count
// descending with alphabetical tie-break. Articles without text
// contribute nothing; an input with no text at all yields nil, which
// presentation layers show as an informational placeholder.
func Build(articles []core.Article, limit int) []Word {
	counts := make(map[string]int)
	for _, a := range articles {
		if a.CombinedText == "" {
			continue
		}
		for _, token := range tokenize(a.CombinedText) {
			counts[token]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	words := make([]Word, 0, len(counts))
	for text, n := range counts {
		words = append(words, Word{Text: text, Count: n})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Text < words[j].Text
	})
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}

	max := float64(words[0].Count)
	for i := range words {
		words[i].Weight = float64(words[i].Count) / max
	}
	return words
}

// minTokenLen drops fragments like "e" or "of" left by tokenization.
const minTokenLen = 3

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// stopwords, short fragments, and pure numbers.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := current.String()
		current.Reset()
		if len(word) < minTokenLen || allDigits(word) {
			return
		}
		if _, stop := stopwords[word]; stop {
			return
		}
		tokens = append(tokens, word)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// stopwords is a compact English function-word list. Domain terms are
// deliberately not filtered; the upstream corpus is already
// preprocessed and the cloud should reflect it as-is.
var stopwords = func() map[string]struct{} {
	list := []string{
		"the", "and", "for", "are", "was", "were", "with", "that", "this",
		"these", "those", "from", "have", "has", "had", "not", "but", "all",
		"can", "could", "may", "might", "will", "would", "should", "its",
		"their", "there", "which", "when", "where", "while", "than", "then",
		"also", "been", "being", "between", "both", "during", "each", "further",
		"here", "how", "into", "more", "most", "other", "our", "out", "over",
		"own", "same", "some", "such", "through", "under", "until", "very",
		"was", "what", "who", "whom", "why", "you", "your", "using", "used",
		"use", "among", "within", "however", "therefore", "thus", "via",
	}
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[w] = struct{}{}
	}
	return set
}()
