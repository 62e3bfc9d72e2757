package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mentahq/menta/internal/models"
)

// TimerInfo is everything the timer screen shows about the running
// learning session.
type TimerInfo struct {
	Trainee    models.User
	Technology models.Technology
	Card       models.TaskCard
	Session    models.SessionLog
}

// TimerModel is the TUI model for a running learning session.
type TimerModel struct {
	width  int
	height int
	info   TimerInfo

	elapsed   time.Duration
	animation int

	stopping bool // user pressed S: close the session on exit
	exiting  bool // user pressed ESC/Q: leave the session running
}

// timerTickMsg is sent every second to update the clock
type timerTickMsg struct{}

// animationTickMsg drives the header animation
type animationTickMsg struct{}

// NewTimerModel creates a timer model for an open session.
func NewTimerModel(info TimerInfo) TimerModel {
	return TimerModel{
		info:    info,
		elapsed: time.Since(info.Session.StartedAt),
	}
}

func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} }),
		tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} }),
	)
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = time.Since(m.info.Session.StartedAt)
		if !m.stopping && !m.exiting {
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} })
		}
		return m, nil

	case animationTickMsg:
		m.animation = (m.animation + 1) % 4
		if !m.stopping && !m.exiting {
			return m, tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} })
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		// Narrow view: just the clock, full width.
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderClockPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderClockPanel(leftWidth, contentHeight),
		"  ",
		m.renderCardPanel(rightWidth, contentHeight))

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderClockPanel renders the left panel with the animated clock.
func (m TimerModel) renderClockPanel(width, height int) string {
	var components []string

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	headerText := fmt.Sprintf("%s  LEARNING  %s", animChars[m.animation], animChars[m.animation])
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).Align(lipgloss.Center).Width(width).
		Render(headerText))

	techText := m.info.Technology.Name
	if len(techText) > width-4 {
		techText = techText[:width-7] + "..."
	}
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).Align(lipgloss.Center).Width(width).
		Render(techText))

	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).Width(width).
		Render(m.info.Trainee.FullName))

	clockContent := ""
	for _, line := range strings.Split(m.renderBigClock(), "\n") {
		clockContent += lipgloss.NewStyle().
			Align(lipgloss.Center).Width(width).Render(line) + "\n"
	}
	components = append(components, strings.TrimRight(clockContent, "\n"))

	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).Align(lipgloss.Center).Width(width).
		Render(fmt.Sprintf("Started at %s", m.info.Session.StartedAt.Format("15:04:05"))))

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

// renderBigClock renders the elapsed time as ASCII art digits.
func (m TimerModel) renderBigClock() string {
	hours := int(m.elapsed.Hours())
	minutes := int(m.elapsed.Minutes()) % 60
	seconds := int(m.elapsed.Seconds()) % 60

	digits := map[rune][5]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
		':': {"     ", "  █  ", "     ", "  █  ", "     "},
	}

	timeStr := fmt.Sprintf("%02d:%02d", minutes, seconds)
	if hours > 0 {
		timeStr = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		if art, ok := digits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(art[i])
				lines[i].WriteString(" ")
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// renderCardPanel renders the right panel with the task card details.
func (m TimerModel) renderCardPanel(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	logoLines := []string{
		"███╗   ███╗███████╗███╗   ██╗████████╗ █████╗ ",
		"████╗ ████║██╔════╝████╗  ██║╚══██╔══╝██╔══██╗",
		"██╔████╔██║█████╗  ██╔██╗ ██║   ██║   ███████║",
		"██║╚██╔╝██║██╔══╝  ██║╚██╗██║   ██║   ██╔══██║",
		"██║ ╚═╝ ██║███████╗██║ ╚████║   ██║   ██║  ██║",
		"╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝",
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).Align(lipgloss.Center).Width(width - 8).
		Render(strings.Join(logoLines, "\n")))
	b.WriteString("\n\n")

	separator := strings.Repeat("─", min(width-12, 40))
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBorder)).
		Align(lipgloss.Center).Width(width - 8).
		Render(separator))
	b.WriteString("\n\n")

	title := fmt.Sprintf("%s learns %s", m.info.Trainee.FullName, m.info.Technology.Name)
	b.WriteString(lipgloss.NewStyle().
		Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width - 12).Padding(0, 1).
		Render(title))
	b.WriteString("\n\n")

	lineStyle := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)

	stateLine := fmt.Sprintf("%s State: %s", stateGlyph(m.info.Card.State),
		lipgloss.NewStyle().Foreground(lipgloss.Color(stateColor(m.info.Card.State))).Bold(true).
			Render(string(m.info.Card.State)))
	b.WriteString(lineStyle.Render(stateLine))
	b.WriteString("\n")

	plannedLine := fmt.Sprintf("📝 Planned: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(m.info.Card.AddedAt.Format("Jan 02, 2006")))
	b.WriteString(lineStyle.Render(plannedLine))
	b.WriteString("\n")

	mentorLine := fmt.Sprintf("🧭 Trainee: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).
			Render(m.info.Trainee.Email))
	b.WriteString(lineStyle.Render(mentorLine))

	return b.String()
}

func (m TimerModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).Align(lipgloss.Center).Width(m.width).
		Render("s stop & mark ready for review · esc/q exit (keep learning) · ctrl+c force quit")
}

// stateGlyph maps a learning state to a display icon.
func stateGlyph(s models.LearningState) string {
	switch s {
	case models.StateInProgress:
		return "⏱"
	case models.StateReadyForReview:
		return "📬"
	case models.StateReviewScheduled:
		return "📅"
	case models.StateApproved:
		return "✅"
	case models.StateCancelled:
		return "✖"
	}
	return "○"
}

// stateColor maps a learning state to its color.
func stateColor(s models.LearningState) string {
	switch s {
	case models.StateApproved:
		return ColorSuccess
	case models.StateCancelled:
		return ColorDisabledText
	case models.StateReadyForReview, models.StateReviewScheduled:
		return ColorWarning
	}
	return ColorSecondaryText
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
