package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mentahq/menta/internal/check"
	"github.com/mentahq/menta/internal/models"
)

// ReviewInfo is the context the review form is filled in against.
type ReviewInfo struct {
	Trainee    models.User
	Technology models.Technology
	Card       models.TaskCard
	Questions  []models.CheckQuestion
}

// Form steps, in order.
const (
	stepOutcome = iota
	stepQuestions
	stepFeedback
	stepConfirm
)

// ratings a question can cycle through; empty means "not asked".
var ratingCycle = []string{"", "correct", "partial", "incorrect"}

// ReviewModel is the TUI model for the mentor's review form.
type ReviewModel struct {
	width  int
	height int

	info   ReviewInfo
	submit func(check.SubmitReviewInput) error

	step     int
	outcome  string // "approved" or "rejected"
	ratings  []int  // index into ratingCycle, per question
	selected int    // question cursor
	feedback textarea.Model

	validation string
	cancelled  bool
	submitted  bool
	err        error
}

// NewReviewModel creates the review form.
func NewReviewModel(info ReviewInfo, submit func(check.SubmitReviewInput) error) ReviewModel {
	ta := textarea.New()
	ta.Placeholder = "What went well, what to improve..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(5)

	return ReviewModel{
		info:    info,
		submit:  submit,
		outcome: "approved",
		ratings: make([]int, len(info.Questions)),
		feedback: ta,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.step == stepFeedback && m.feedback.Focused() {
				m.feedback.Blur()
				return m, nil
			}
			m.cancelled = true
			return m, tea.Quit
		}

		switch m.step {
		case stepOutcome:
			return m.updateOutcome(msg)
		case stepQuestions:
			return m.updateQuestions(msg)
		case stepFeedback:
			return m.updateFeedback(msg)
		case stepConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m ReviewModel) updateOutcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		if m.outcome == "approved" {
			m.outcome = "rejected"
		} else {
			m.outcome = "approved"
		}
	case "enter":
		if len(m.info.Questions) > 0 {
			m.step = stepQuestions
		} else {
			m.step = stepFeedback
			m.feedback.Focus()
		}
	}
	return m, nil
}

func (m ReviewModel) updateQuestions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.info.Questions)-1 {
			m.selected++
		}
	case "left", "h":
		m.ratings[m.selected] = (m.ratings[m.selected] + len(ratingCycle) - 1) % len(ratingCycle)
	case "right", "l", " ":
		m.ratings[m.selected] = (m.ratings[m.selected] + 1) % len(ratingCycle)
	case "enter":
		m.step = stepFeedback
		m.feedback.Focus()
	}
	return m, nil
}

func (m ReviewModel) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && !m.feedback.Focused() {
		m.step = stepConfirm
		return m, nil
	}
	if msg.String() == "ctrl+d" {
		// Done typing.
		m.feedback.Blur()
		if len(strings.TrimSpace(m.feedback.Value())) < 10 {
			m.validation = "Feedback must be at least 10 characters"
			m.feedback.Focus()
			return m, nil
		}
		m.validation = ""
		m.step = stepConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Update(msg)
	return m, cmd
}

func (m ReviewModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		in := check.SubmitReviewInput{
			Outcome:  m.outcome,
			Feedback: strings.TrimSpace(m.feedback.Value()),
		}
		for i, q := range m.info.Questions {
			rating := ratingCycle[m.ratings[i]]
			if rating == "" {
				continue
			}
			in.Results = append(in.Results, check.ResultInput{
				QuestionID: q.ID,
				Rating:     rating,
			})
		}
		if err := m.submit(in); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.submitted = true
		return m, tea.Quit
	case "n", "b":
		// Back to feedback.
		m.step = stepFeedback
		m.feedback.Focus()
	}
	return m, nil
}

func (m ReviewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).
		Render(fmt.Sprintf("📋 Review: %s / %s", m.info.Trainee.FullName, m.info.Technology.Name))

	var body string
	switch m.step {
	case stepOutcome:
		body = m.viewOutcome()
	case stepQuestions:
		body = m.viewQuestions()
	case stepFeedback:
		body = m.viewFeedback()
	case stepConfirm:
		body = m.viewConfirm()
	}

	var parts []string
	parts = append(parts, title, "", body)
	if m.validation != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).Render("⚠ "+m.validation))
	}
	parts = append(parts, "", m.viewHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m ReviewModel) viewOutcome() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render("Overall verdict:")

	render := func(text string, active bool) string {
		style := lipgloss.NewStyle().Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Foreground(lipgloss.Color(ColorDisabledText))
		if active {
			style = style.
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)
		}
		return style.Render(text)
	}

	return label + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		render("✅ approved", m.outcome == "approved"),
		"  ",
		render("❌ rejected", m.outcome == "rejected"))
}

func (m ReviewModel) viewQuestions() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).
		Render("Rate the questions you asked (leave blank to skip):"))
	b.WriteString("\n\n")

	for i, q := range m.info.Questions {
		cursor := "  "
		if i == m.selected {
			cursor = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render("▸ ")
		}

		rating := ratingCycle[m.ratings[i]]
		var badge string
		switch rating {
		case "correct":
			badge = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("[correct]  ")
		case "partial":
			badge = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render("[partial]  ")
		case "incorrect":
			badge = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("[incorrect]")
		default:
			badge = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("[not asked]")
		}

		text := q.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		if i == m.selected {
			textStyle = textStyle.Foreground(lipgloss.Color(ColorPrimaryText))
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, badge, textStyle.Render(text))
	}
	return b.String()
}

func (m ReviewModel) viewFeedback() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).
		Render("Written feedback:")
	return label + "\n\n" + m.feedback.View()
}

func (m ReviewModel) viewConfirm() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).
		Render("Submit this review?"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  Verdict:  %s\n", m.outcome)
	asked := 0
	for _, r := range m.ratings {
		if ratingCycle[r] != "" {
			asked++
		}
	}
	fmt.Fprintf(&b, "  Questions rated: %d of %d\n", asked, len(m.info.Questions))

	feedback := strings.TrimSpace(m.feedback.Value())
	if len(feedback) > 70 {
		feedback = feedback[:67] + "..."
	}
	fmt.Fprintf(&b, "  Feedback: %s\n", feedback)
	return b.String()
}

func (m ReviewModel) viewHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).Italic(true)

	switch m.step {
	case stepOutcome:
		return helpStyle.Render("←/→ toggle · enter next · esc cancel")
	case stepQuestions:
		return helpStyle.Render("↑/↓ select · ←/→/space cycle rating · enter next · esc cancel")
	case stepFeedback:
		return helpStyle.Render("type feedback · ctrl+d done · esc cancel")
	default:
		return helpStyle.Render("enter/y submit · b back · esc cancel")
	}
}
