package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pubscope/internal/aggregate"
	"pubscope/internal/catalog"
	"pubscope/internal/core"
	"pubscope/internal/filter"
)

// HealthResponse is the /health payload
type HealthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// StatusResponse is the /api/status payload
type StatusResponse struct {
	Uptime    string    `json:"uptime"`
	DatasetID string    `json:"dataset_id"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	MinYear   int       `json:"min_year"`
	MaxYear   int       `json:"max_year"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// TopicInfo is one entry of the /api/topics payload
type TopicInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// AggregatesResponse is the /api/aggregates payload for one filter state
type AggregatesResponse struct {
	Criteria     criteriaView          `json:"criteria"`
	Total        int                   `json:"total"`
	ByYearTopic  []core.YearTopicCount `json:"by_year_topic"`
	Distribution []core.TopicCount     `json:"distribution"`
}

type criteriaView struct {
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
	Keyword string   `json:"keyword"`
	Topics  []string `json:"topics"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Rows: len(s.ds.Articles)})
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatusResponse{
		Uptime:    time.Since(serverStartTime).String(),
		DatasetID: s.ds.ID,
		Source:    s.ds.Path,
		Rows:      len(s.ds.Articles),
		MinYear:   s.ds.MinYear,
		MaxYear:   s.ds.MaxYear,
		LoadedAt:  s.ds.LoadedAt,
	})
}

// handleTopics handles GET /api/topics
func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	keys := s.cat.SortedKeys()
	topics := make([]TopicInfo, 0, len(keys))
	for _, key := range keys {
		topics = append(topics, TopicInfo{
			Key:   key,
			Label: s.cat.Describe(key),
			Color: catalog.ColorHex(key),
		})
	}
	s.respondJSON(w, http.StatusOK, topics)
}

// handleAggregates handles GET /api/aggregates with the same query
// parameters as the dashboard page.
func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	criteria := s.criteriaFromQuery(r.URL.Query())
	rows := filter.Apply(s.ds.Articles, criteria)

	s.respondJSON(w, http.StatusOK, AggregatesResponse{
		Criteria: criteriaView{
			MinYear: criteria.MinYear,
			MaxYear: criteria.MaxYear,
			Keyword: criteria.Keyword,
			Topics:  criteria.SelectedTopics(),
		},
		Total:        len(rows),
		ByYearTopic:  aggregate.ByYearAndTopic(rows, s.cat),
		Distribution: aggregate.ByTopic(rows, s.cat),
	})
}

// criteriaFromQuery decodes filter state from query parameters:
// year_min, year_max, q, and repeated topic values. A request with no
// topic parameters at all is the initial "everything selected" state;
// the filtered=1 marker set by the dashboard form distinguishes a
// deliberate empty selection, which matches nothing.
func (s *Server) criteriaFromQuery(q url.Values) core.Criteria {
	criteria := core.NewCriteria(s.ds, s.cat.SortedKeys())

	if v, err := strconv.Atoi(q.Get("year_min")); err == nil {
		criteria.MinYear = v
	}
	if v, err := strconv.Atoi(q.Get("year_max")); err == nil {
		criteria.MaxYear = v
	}
	criteria.Keyword = q.Get("q")

	topics := q["topic"]
	if len(topics) > 0 || q.Get("filtered") != "" {
		criteria.Topics = make(map[string]bool, len(topics))
		for _, t := range topics {
			criteria.Topics[t] = true
		}
	}
	return criteria
}

// respondJSON writes a JSON response with the given status code
func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}
