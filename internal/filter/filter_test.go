package filter

import (
	"testing"

	"pubscope/internal/core"
)

func testArticles() []core.Article {
	return []core.Article{
		{PublicationYear: 2018, Title: "Phage review", CombinedText: "phage therapy against resistant bacteria", DominantTopic: "Topic 1"},
		{PublicationYear: 2019, Title: "MRSA outbreak", CombinedText: "MRSA surveillance in hospitals", DominantTopic: "Topic 2"},
		{PublicationYear: 2020, Title: "Stewardship", CombinedText: "antibiotic stewardship programs", DominantTopic: "Topic 2"},
		{PublicationYear: 2020, Title: "No text row", CombinedText: "", DominantTopic: "Topic 3"},
		{PublicationYear: 2021, Title: "Genomics", CombinedText: "genomic epidemiology of mrsa clones", DominantTopic: "Topic 1"},
	}
}

func allTopics() map[string]bool {
	return map[string]bool{"Topic 1": true, "Topic 2": true, "Topic 3": true}
}

func TestApplyYearBounds(t *testing.T) {
	c := core.Criteria{MinYear: 2019, MaxYear: 2020, Topics: allTopics()}
	got := Apply(testArticles(), c)
	if len(got) != 3 {
		t.Fatalf("Expected 3 articles in 2019-2020, got %d", len(got))
	}
	for _, a := range got {
		if a.PublicationYear < 2019 || a.PublicationYear > 2020 {
			t.Errorf("Article from %d escaped the inclusive bounds", a.PublicationYear)
		}
	}
}

func TestApplyKeywordIsCaseInsensitive(t *testing.T) {
	base := core.Criteria{MinYear: 2018, MaxYear: 2021, Topics: allTopics()}

	lower := base
	lower.Keyword = "mrsa"
	upper := base
	upper.Keyword = "MRSA"

	a := Apply(testArticles(), lower)
	b := Apply(testArticles(), upper)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("Expected 2 matches for both casings, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Title != b[i].Title {
			t.Errorf("Casing changed the result set: %q vs %q", a[i].Title, b[i].Title)
		}
	}
}

func TestApplyKeywordSkipsEmptyText(t *testing.T) {
	c := core.Criteria{MinYear: 2018, MaxYear: 2021, Keyword: "anything", Topics: allTopics()}
	for _, a := range Apply(testArticles(), c) {
		if a.CombinedText == "" {
			t.Error("Rows without searchable text must never match a keyword")
		}
	}
}

func TestApplyTopicMembership(t *testing.T) {
	c := core.Criteria{MinYear: 2018, MaxYear: 2021, Topics: map[string]bool{"Topic 2": true}}
	got := Apply(testArticles(), c)
	if len(got) != 2 {
		t.Fatalf("Expected 2 Topic 2 articles, got %d", len(got))
	}
	for _, a := range got {
		if a.DominantTopic != "Topic 2" {
			t.Errorf("Unexpected topic %q in result", a.DominantTopic)
		}
	}
}

func TestApplyEmptyTopicSetMatchesNothing(t *testing.T) {
	c := core.Criteria{MinYear: 2018, MaxYear: 2021, Topics: map[string]bool{}}
	if got := Apply(testArticles(), c); len(got) != 0 {
		t.Errorf("Empty topic selection should match no rows, got %d", len(got))
	}

	c.Topics = nil
	if got := Apply(testArticles(), c); len(got) != 0 {
		t.Errorf("Nil topic selection should match no rows, got %d", len(got))
	}
}

func TestApplyConjunction(t *testing.T) {
	c := core.Criteria{
		MinYear: 2019,
		MaxYear: 2021,
		Keyword: "mrsa",
		Topics:  map[string]bool{"Topic 2": true},
	}
	got := Apply(testArticles(), c)
	if len(got) != 1 || got[0].Title != "MRSA outbreak" {
		t.Errorf("Expected the single article matching all three predicates, got %v", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := testArticles()
	c := core.Criteria{MinYear: 2020, MaxYear: 2020, Topics: allTopics()}
	out := Apply(in, c)

	if len(in) != 5 {
		t.Errorf("Input slice length changed to %d", len(in))
	}
	if len(out) > 0 {
		out[0].Title = "mutated"
		if in[2].Title == "mutated" {
			t.Error("Result shares backing storage with the input")
		}
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	c := core.Criteria{MinYear: 2018, MaxYear: 2021, Topics: allTopics()}
	got := Apply(testArticles(), c)
	for i := 1; i < len(got); i++ {
		if got[i].PublicationYear < got[i-1].PublicationYear {
			t.Error("Filtering should keep the original row order")
		}
	}
}
