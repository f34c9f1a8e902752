package server

import (
	"net/http"

	"pubscope/internal/aggregate"
	"pubscope/internal/catalog"
	"pubscope/internal/core"
	"pubscope/internal/filter"
	"pubscope/internal/wordcloud"
)

// dashboardView is the template context for the dashboard page. All
// chart geometry is computed server-side so the template stays dumb.
type dashboardView struct {
	Criteria    core.Criteria
	DataMinYear int
	DataMaxYear int
	Total       int
	Empty       bool

	Topics       []topicOption
	VolumeBars   []volumeBar
	Distribution []distRow
	Cloud        []cloudWord
	Preview      []core.Article
	PreviewLimit int
}

// topicOption is one checkbox of the topic multi-select.
type topicOption struct {
	Key      string
	Label    string
	Color    string
	Selected bool
}

// volumeBar is one stacked bar of the volume chart.
type volumeBar struct {
	Year     int
	Total    int
	Segments []barSegment
}

// barSegment is one topic slice of a stacked bar. Width is a
// percentage of the chart area, scaled against the busiest year.
type barSegment struct {
	Topic string
	Label string
	Color string
	Count int
	Width float64
}

// distRow is one row of the topic distribution chart.
type distRow struct {
	Topic string
	Label string
	Color string
	Count int
	Width float64
}

// cloudWord is one word of the rendered cloud; Size is a font size in
// pixels derived from the word weight.
type cloudWord struct {
	Text  string
	Count int
	Size  int
}

// handleDashboard renders the full dashboard for the filter state in
// the query string.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	criteria := s.criteriaFromQuery(r.URL.Query())
	rows := filter.Apply(s.ds.Articles, criteria)

	view := dashboardView{
		Criteria:     criteria,
		DataMinYear:  s.ds.MinYear,
		DataMaxYear:  s.ds.MaxYear,
		Total:        len(rows),
		Empty:        len(rows) == 0,
		Topics:       s.topicOptions(criteria),
		PreviewLimit: s.opts.PreviewLimit,
	}

	if !view.Empty {
		view.VolumeBars = buildVolumeBars(aggregate.ByYearAndTopic(rows, s.cat))
		view.Distribution = buildDistribution(aggregate.ByTopic(rows, s.cat))
		view.Cloud = buildCloud(wordcloud.Build(rows, s.opts.WordCloudLimit))
		view.Preview = rows
		if len(view.Preview) > s.opts.PreviewLimit {
			view.Preview = view.Preview[:s.opts.PreviewLimit]
		}
	}

	if err := s.renderer.Render(w, "dashboard", view); err != nil {
		s.log.Error("Failed to render dashboard", "error", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
	}
}

func (s *Server) topicOptions(criteria core.Criteria) []topicOption {
	keys := s.cat.SortedKeys()
	opts := make([]topicOption, 0, len(keys))
	for _, key := range keys {
		opts = append(opts, topicOption{
			Key:      key,
			Label:    s.cat.Describe(key),
			Color:    catalog.ColorHex(key),
			Selected: criteria.Topics[key],
		})
	}
	return opts
}

// buildVolumeBars groups the (year, topic) counts into one bar per
// year. Segment widths are percentages of the busiest year's total,
// so bar lengths stay comparable across years.
func buildVolumeBars(counts []core.YearTopicCount) []volumeBar {
	perYear := make(map[int]int)
	maxTotal := 0
	for _, c := range counts {
		perYear[c.Year] += c.Count
		if perYear[c.Year] > maxTotal {
			maxTotal = perYear[c.Year]
		}
	}

	bars := make([]volumeBar, 0, len(perYear))
	for _, year := range aggregate.Years(counts) {
		bar := volumeBar{Year: year, Total: perYear[year]}
		for _, c := range counts {
			if c.Year != year {
				continue
			}
			bar.Segments = append(bar.Segments, barSegment{
				Topic: c.Topic,
				Label: c.Label,
				Color: catalog.ColorHex(c.Topic),
				Count: c.Count,
				Width: float64(c.Count) / float64(maxTotal) * 100,
			})
		}
		bars = append(bars, bar)
	}
	return bars
}

func buildDistribution(counts []core.TopicCount) []distRow {
	maxCount := 0
	for _, c := range counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	rows := make([]distRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, distRow{
			Topic: c.Topic,
			Label: c.Label,
			Color: catalog.ColorHex(c.Topic),
			Count: c.Count,
			Width: float64(c.Count) / float64(maxCount) * 100,
		})
	}
	return rows
}

// buildCloud maps word weights onto font sizes between 12 and 38px.
func buildCloud(words []wordcloud.Word) []cloudWord {
	cloud := make([]cloudWord, 0, len(words))
	for _, w := range words {
		cloud = append(cloud, cloudWord{
			Text:  w.Text,
			Count: w.Count,
			Size:  12 + int(w.Weight*26),
		})
	}
	return cloud
}
