// Package tui holds the interactive terminal frontends. The fetch model
// tracks parallel pseudopotential downloads as they land.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qelab/internal/pseudo"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type rowState int

const (
	rowPending rowState = iota
	rowCached
	rowFetched
	rowFailed
)

type fetchRow struct {
	element string
	state   rowState
	detail  string
}

type fetchModel struct {
	functional string
	rows       []fetchRow
	index      map[string]int
	results    chan pseudo.FetchResult
	done       int
	quitting   bool
}

// NewFetchModel builds the progress view over a result channel. The
// caller runs Manager.FetchAll in a goroutine and feeds results in;
// closing is not required, the model quits after len(elements) events.
func NewFetchModel(functional string, elements []string, results chan pseudo.FetchResult) fetchModel {
	rows := make([]fetchRow, len(elements))
	index := make(map[string]int, len(elements))
	for i, e := range elements {
		rows[i] = fetchRow{element: e, state: rowPending}
		index[e] = i
	}
	return fetchModel{
		functional: functional,
		rows:       rows,
		index:      index,
		results:    results,
	}
}

type resultMsg pseudo.FetchResult

func waitForResult(results chan pseudo.FetchResult) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-results)
	}
}

func (m fetchModel) Init() tea.Cmd {
	return waitForResult(m.results)
}

func (m fetchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case resultMsg:
		i, ok := m.index[msg.Element]
		if ok {
			switch {
			case msg.Err != nil:
				m.rows[i].state = rowFailed
				m.rows[i].detail = msg.Err.Error()
			case msg.Cached:
				m.rows[i].state = rowCached
				m.rows[i].detail = msg.Path
			default:
				m.rows[i].state = rowFetched
				m.rows[i].detail = msg.Path
			}
		}
		m.done++
		if m.done >= len(m.rows) {
			return m, tea.Quit
		}
		return m, waitForResult(m.results)
	}
	return m, nil
}

func (m fetchModel) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render(fmt.Sprintf("fetching %s pseudopotentials", m.functional)) + "\n\n")
	for _, row := range m.rows {
		var status string
		switch row.state {
		case rowPending:
			status = dim.Render("...")
		case rowCached:
			status = yellow.Render("cached")
		case rowFetched:
			status = green.Render("done")
		case rowFailed:
			status = red.Render("FAIL " + row.detail)
		}
		b.WriteString(fmt.Sprintf("  %-4s %s\n", row.element, status))
	}
	b.WriteString("\n" + dim.Render(fmt.Sprintf("%d/%d  press q to abort", m.done, len(m.rows))))
	return b.String()
}

// Failed reports elements whose download returned an error.
func (m fetchModel) Failed() []string {
	var failed []string
	for _, row := range m.rows {
		if row.state == rowFailed {
			failed = append(failed, row.element)
		}
	}
	return failed
}

// Run fetches all elements with a live progress display and returns the
// elements that failed.
func Run(mgr *pseudo.Manager, functional string, elements []string) ([]string, error) {
	results := make(chan pseudo.FetchResult, len(elements))
	go func() {
		mgr.FetchAll(context.Background(), functional, elements, func(r pseudo.FetchResult) {
			results <- r
		})
	}()

	final, err := tea.NewProgram(NewFetchModel(functional, elements, results)).Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(fetchModel); ok {
		return m.Failed(), nil
	}
	return nil, nil
}
