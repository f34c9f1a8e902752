package core

import "time"

// Article represents one row of the loaded publication table.
type Article struct {
	PublicationDate time.Time `json:"publication_date"` // Parsed publication date
	PublicationYear int       `json:"publication_year"` // Calendar year of PublicationDate
	Title           string    `json:"title"`            // Article title (display only)
	Abstract        string    `json:"abstract"`         // Article abstract (display only)
	Authors         string    `json:"authors"`          // Author list as a single string (display only)
	CombinedText    string    `json:"combined_text"`    // Searchable concatenation of title/abstract text; may be empty
	DominantTopic   string    `json:"dominant_topic"`   // Normalized topic key, always "Topic <n>" after loading
}

// Dataset is the immutable result of loading a publication table from disk.
// It is shared read-only after the loader produces it.
type Dataset struct {
	ID       string    `json:"id"`        // Unique identifier for this load
	Path     string    `json:"path"`      // Source file path
	Articles []Article `json:"articles"`  // Rows that survived date parsing
	MinYear  int       `json:"min_year"`  // Earliest publication year in the data
	MaxYear  int       `json:"max_year"`  // Latest publication year in the data
	LoadedAt time.Time `json:"loaded_at"` // When the file was parsed
}

// Criteria holds the active filter state for one rendering pass.
// It is session-scoped and never persisted.
type Criteria struct {
	MinYear int             `json:"min_year"` // Inclusive lower year bound
	MaxYear int             `json:"max_year"` // Inclusive upper year bound
	Keyword string          `json:"keyword"`  // Case-insensitive substring match on CombinedText; empty disables
	Topics  map[string]bool `json:"topics"`   // Selected topic keys; an empty set matches nothing
}

// NewCriteria returns criteria spanning the whole dataset with every
// given topic selected, matching the initial state of the UI controls.
func NewCriteria(ds *Dataset, topics []string) Criteria {
	selected := make(map[string]bool, len(topics))
	for _, t := range topics {
		selected[t] = true
	}
	return Criteria{
		MinYear: ds.MinYear,
		MaxYear: ds.MaxYear,
		Topics:  selected,
	}
}

// SelectedTopics returns the selected topic keys in unspecified order.
func (c Criteria) SelectedTopics() []string {
	keys := make([]string, 0, len(c.Topics))
	for k, on := range c.Topics {
		if on {
			keys = append(keys, k)
		}
	}
	return keys
}

// YearTopicCount is one (year, topic) cell of the stacked volume chart.
type YearTopicCount struct {
	Year    int    `json:"year"`     // Publication year
	Topic   string `json:"topic"`    // Topic key, e.g. "Topic 3"
	Count   int    `json:"count"`    // Number of articles in this cell
	Label   string `json:"label"`    // Human-readable topic description
	SortKey int    `json:"sort_key"` // Numeric topic suffix, stacking order
}

// TopicCount is one row of the topic distribution chart.
type TopicCount struct {
	Topic   string `json:"topic"`    // Topic key
	Count   int    `json:"count"`    // Number of articles with this topic
	Label   string `json:"label"`    // Human-readable topic description
	SortKey int    `json:"sort_key"` // Numeric topic suffix, tie-break order
}
