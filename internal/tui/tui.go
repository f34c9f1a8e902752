// Package tui renders the interactive terminal dashboard: filter
// controls on the left, charts and the article preview on the right.
// Every control change re-runs filter → aggregate → render against
// the in-memory dataset.
package tui

import (
	"fmt"
	"strings"

	"pubscope/internal/aggregate"
	"pubscope/internal/catalog"
	"pubscope/internal/core"
	"pubscope/internal/filter"
	"pubscope/internal/wordcloud"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options carries presentation limits from configuration.
type Options struct {
	PreviewLimit   int
	WordCloudLimit int
}

// focus identifies which filter control receives key input.
type focus int

const (
	focusKeyword focus = iota
	focusYearMin
	focusYearMax
	focusTopics
)

const chartWidth = 44

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	focusedPanel = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	ds  *core.Dataset
	cat *catalog.Catalog
	opt Options

	criteria    core.Criteria
	keyword     textinput.Model
	focus       focus
	topicCursor int
	topicKeys   []string // catalog order, plus uncataloged keys seen in the data

	// Derived per filter change.
	filtered    []core.Article
	yearCounts  []core.YearTopicCount
	topicCounts []core.TopicCount
	words       []wordcloud.Word
	preview     table.Model

	width    int
	height   int
	quitting bool
}

func newModel(ds *core.Dataset, cat *catalog.Catalog, opt Options) model {
	ti := textinput.New()
	ti.Placeholder = "keyword in title/abstract"
	ti.CharLimit = 64
	ti.Width = 28
	ti.Focus()

	columns := []table.Column{
		{Title: "Year", Width: 5},
		{Title: "Title", Width: 48},
		{Title: "Topic", Width: 9},
		{Title: "Date", Width: 10},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)

	m := model{
		ds:        ds,
		cat:       cat,
		opt:       opt,
		criteria:  core.NewCriteria(ds, cat.SortedKeys()),
		keyword:   ti,
		topicKeys: topicKeys(ds, cat),
		preview:   tbl,
	}
	m.refresh()
	return m
}

// topicKeys lists the catalog keys in display order, followed by any
// topic codes present in the data but missing from the catalog, so
// those rows stay filterable.
func topicKeys(ds *core.Dataset, cat *catalog.Catalog) []string {
	keys := cat.SortedKeys()
	seen := cat.AllKeys()
	var extra []string
	for _, a := range ds.Articles {
		if !seen[a.DominantTopic] {
			seen[a.DominantTopic] = true
			extra = append(extra, a.DominantTopic)
		}
	}
	return append(keys, extra...)
}

// refresh re-applies the filter and recomputes every aggregate view.
// Aggregates are rebuilt from scratch on each change; the dataset is
// small enough that incremental updates would buy nothing.
func (m *model) refresh() {
	m.criteria.Keyword = m.keyword.Value()
	m.filtered = filter.Apply(m.ds.Articles, m.criteria)
	m.yearCounts = aggregate.ByYearAndTopic(m.filtered, m.cat)
	m.topicCounts = aggregate.ByTopic(m.filtered, m.cat)
	m.words = wordcloud.Build(m.filtered, m.opt.WordCloudLimit)

	rows := make([]table.Row, 0, m.opt.PreviewLimit)
	for i, a := range m.filtered {
		if i >= m.opt.PreviewLimit {
			break
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", a.PublicationYear),
			a.Title,
			a.DominantTopic,
			a.PublicationDate.Format("2006-01-02"),
		})
	}
	m.preview.SetRows(rows)
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % 4)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + 3) % 4)
			return m, nil
		}

		switch m.focus {
		case focusKeyword:
			var cmd tea.Cmd
			m.keyword, cmd = m.keyword.Update(msg)
			m.refresh()
			return m, cmd
		case focusYearMin, focusYearMax:
			m.adjustYear(msg.String())
			return m, nil
		case focusTopics:
			m.handleTopicKey(msg.String())
			return m, nil
		}
	}
	return m, nil
}

func (m *model) setFocus(f focus) {
	m.focus = f
	if f == focusKeyword {
		m.keyword.Focus()
	} else {
		m.keyword.Blur()
	}
}

func (m *model) adjustYear(key string) {
	delta := 0
	switch key {
	case "left", "h", "-":
		delta = -1
	case "right", "l", "+", "=":
		delta = 1
	default:
		return
	}
	if m.focus == focusYearMin {
		y := m.criteria.MinYear + delta
		if y >= m.ds.MinYear && y <= m.criteria.MaxYear {
			m.criteria.MinYear = y
		}
	} else {
		y := m.criteria.MaxYear + delta
		if y <= m.ds.MaxYear && y >= m.criteria.MinYear {
			m.criteria.MaxYear = y
		}
	}
	m.refresh()
}

func (m *model) handleTopicKey(key string) {
	switch key {
	case "up", "k":
		if m.topicCursor > 0 {
			m.topicCursor--
		}
	case "down", "j":
		if m.topicCursor < len(m.topicKeys)-1 {
			m.topicCursor++
		}
	case " ", "space", "enter":
		topic := m.topicKeys[m.topicCursor]
		m.criteria.Topics[topic] = !m.criteria.Topics[topic]
		m.refresh()
	case "a":
		for _, t := range m.topicKeys {
			m.criteria.Topics[t] = true
		}
		m.refresh()
	case "n":
		// Deselecting everything really does match nothing.
		m.criteria.Topics = make(map[string]bool)
		m.refresh()
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("PubMed Antibiotic Resistance Trend Analysis")
	count := headingStyle.Render(fmt.Sprintf("Articles Found: %d", len(m.filtered)))

	left := m.viewFilters()

	var right string
	if len(m.filtered) == 0 {
		right = panelStyle.Render(warnStyle.Render("No articles found with the selected filters.\nTry adjusting the filters."))
	} else {
		right = lipgloss.JoinVertical(lipgloss.Left,
			m.viewVolumeChart(),
			m.viewDistribution(),
			m.viewWordCloud(),
			m.viewPreview(),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := helpStyle.Render("[tab] next control  [←/→] adjust year  [space] toggle topic  [a] all  [n] none  [esc] quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, count, body, help)
}

func (m model) viewFilters() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Analysis Filters"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Keyword", focusKeyword))
	b.WriteString("\n")
	b.WriteString(m.keyword.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fmt.Sprintf("From year: %d", m.criteria.MinYear), focusYearMin))
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(fmt.Sprintf("To year:   %d", m.criteria.MaxYear), focusYearMax))
	b.WriteString("\n\n")

	selected := len(m.criteria.SelectedTopics())
	b.WriteString(m.fieldLabel(fmt.Sprintf("Topics (%d selected)", selected), focusTopics))
	b.WriteString("\n")
	for i, key := range m.topicKeys {
		cursor := "  "
		if m.focus == focusTopics && i == m.topicCursor {
			cursor = "> "
		}
		mark := "[ ]"
		if m.criteria.Topics[key] {
			mark = "[x]"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.ColorANSI(key))).Render("■")
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, mark, swatch, key))
	}

	return focusedPanel.Width(36).Render(b.String())
}

func (m model) fieldLabel(text string, f focus) string {
	if m.focus == f {
		return titleStyle.Render(text)
	}
	return text
}

// viewVolumeChart draws one horizontal bar per year, segments stacked
// in ascending topic order and scaled against the busiest year.
func (m model) viewVolumeChart() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Publication Volume by Year and Topic"))
	b.WriteString("\n")

	perYear := make(map[int]int)
	maxTotal := 0
	for _, c := range m.yearCounts {
		perYear[c.Year] += c.Count
		if perYear[c.Year] > maxTotal {
			maxTotal = perYear[c.Year]
		}
	}

	for _, year := range aggregate.Years(m.yearCounts) {
		b.WriteString(fmt.Sprintf("%d ", year))
		for _, c := range m.yearCounts {
			if c.Year != year || c.Count == 0 {
				continue
			}
			w := c.Count * chartWidth / maxTotal
			if w == 0 {
				w = 1
			}
			seg := lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.ColorANSI(c.Topic))).Render(strings.Repeat("█", w))
			b.WriteString(seg)
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d", perYear[year])))
		b.WriteString("\n")
	}
	return panelStyle.Render(b.String())
}

// viewDistribution draws the per-topic horizontal bars, ordered by
// count descending.
func (m model) viewDistribution() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Distribution of Articles by Topic"))
	b.WriteString("\n")

	maxCount := 0
	for _, c := range m.topicCounts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	for _, c := range m.topicCounts {
		w := c.Count * chartWidth / maxCount
		if w == 0 {
			w = 1
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.ColorANSI(c.Topic))).Render(strings.Repeat("█", w))
		b.WriteString(fmt.Sprintf("%-9s %s %d\n", c.Topic, bar, c.Count))
		b.WriteString(mutedStyle.Render("          " + truncate(c.Label, 56)))
		b.WriteString("\n")
	}
	return panelStyle.Render(b.String())
}

func (m model) viewWordCloud() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Word Cloud of Filtered Articles"))
	b.WriteString("\n")

	if len(m.words) == 0 {
		b.WriteString(mutedStyle.Render("No text available to generate a word cloud for the current filters."))
		return panelStyle.Render(b.String())
	}

	parts := make([]string, 0, len(m.words))
	for _, w := range m.words {
		parts = append(parts, wordStyle(w.Weight).Render(w.Text))
	}
	cloud := lipgloss.NewStyle().Width(72).Render(strings.Join(parts, " "))
	b.WriteString(cloud)
	return panelStyle.Render(b.String())
}

// wordStyle scales emphasis with word weight in place of font size.
func wordStyle(weight float64) lipgloss.Style {
	switch {
	case weight >= 0.66:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	case weight >= 0.33:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	default:
		return mutedStyle
	}
}

func (m model) viewPreview() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Article Preview"))
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	return panelStyle.Render(b.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Run starts the dashboard and blocks until the user quits.
func Run(ds *core.Dataset, cat *catalog.Catalog, opt Options) error {
	p := tea.NewProgram(newModel(ds, cat, opt), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
