package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/parser"
	"github.com/mentahq/menta/internal/workflow"
)

// DashboardModel is the TUI model for browsing a trainee's task cards.
type DashboardModel struct {
	width  int
	height int

	trainee  models.User
	entries  []workflow.DashboardEntry
	selected int

	shimmer *ShimmerState
}

// shimmerTickMsg advances the selected-row highlight
type shimmerTickMsg struct{}

// NewDashboardModel creates a dashboard model over the given entries.
func NewDashboardModel(trainee models.User, entries []workflow.DashboardEntry) DashboardModel {
	return DashboardModel{
		trainee: trainee,
		entries: entries,
		shimmer: NewShimmerState(),
	}
}

func (m DashboardModel) Init() tea.Cmd {
	if m.shimmer.ShouldTick() {
		return tea.Tick(m.shimmer.TickInterval(), func(time.Time) tea.Msg {
			return shimmerTickMsg{}
		})
	}
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if m.shimmer.ShouldTick() {
			return m, tea.Tick(m.shimmer.TickInterval(), func(time.Time) tea.Msg {
				return shimmerTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.shimmer.Reset()
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.shimmer.Reset()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).Align(lipgloss.Center).Width(m.width).
		Render(fmt.Sprintf("📋 DASHBOARD — %s", m.trainee.FullName))

	rows := m.renderRows()
	details := m.renderDetails()

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).Align(lipgloss.Center).Width(m.width).
		Render("↑/↓ navigate · esc/q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", rows, "", details, "", help)
}

func (m DashboardModel) renderRows() string {
	var b strings.Builder

	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Bold(true)
	b.WriteString("  " + headStyle.Render(fmt.Sprintf("%-22s %-20s %-10s %s", "TECHNOLOGY", "STATE", "TIME", "REVIEWS")))
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).
		Render(strings.Repeat("─", min(m.width-4, 64))))
	b.WriteString("\n")

	for i, e := range m.entries {
		name := e.TechnologyName
		if i == m.selected {
			name = m.shimmer.Render(name, 22)
		} else {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).
				Render(fmt.Sprintf("%-22s", name))
		}

		stateText := lipgloss.NewStyle().
			Foreground(lipgloss.Color(stateColor(e.Card.State))).
			Render(fmt.Sprintf("%-18s", string(e.Card.State)))

		timeStr := formatCompactDuration(e.TotalLearning)
		if e.SessionOpen {
			timeStr += " ⏱"
		}

		cursor := "  "
		if i == m.selected {
			cursor = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render("▸ ")
		}
		pad := ""
		if i == m.selected {
			// Shimmer output carries its own escape codes, pad manually.
			if n := 22 - len(e.TechnologyName); n > 0 {
				pad = strings.Repeat(" ", n)
			}
		}
		fmt.Fprintf(&b, "%s%s%s %s %s %-10s %d\n",
			cursor, name, pad, stateGlyph(e.Card.State), stateText, timeStr, e.ReviewCount)
	}
	return b.String()
}

func (m DashboardModel) renderDetails() string {
	if m.selected >= len(m.entries) {
		return ""
	}
	e := m.entries[m.selected]

	var lines []string
	lines = append(lines, fmt.Sprintf("Planned on %s", e.Card.AddedAt.Format("Jan 02, 2006")))
	lines = append(lines, fmt.Sprintf("Total learning time: %s", formatCompactDuration(e.TotalLearning)))
	lines = append(lines, fmt.Sprintf("Reviews so far: %d", e.ReviewCount))
	if e.Card.ScheduledReviewAt != nil {
		lines = append(lines, fmt.Sprintf("Review: %s", parser.FormatWhen(e.Card.ScheduledReviewAt, time.Now())))
	}
	if e.SessionOpen {
		lines = append(lines, "A learning session is running now")
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// formatCompactDuration renders a duration as 1.5h / 12m / 40s.
func formatCompactDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
