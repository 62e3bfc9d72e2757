package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentahq/menta/internal/check"
	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/workflow"
)

// RunTimerTUI shows the session timer. When the user stops the session
// from the UI, stop is called; the return value reports whether the
// session was stopped.
func RunTimerTUI(info TimerInfo, stop func() error) (bool, error) {
	p := tea.NewProgram(NewTimerModel(info), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(TimerModel)
	if m.stopping {
		if err := stop(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// RunDashboardTUI shows an interactive dashboard of a trainee's cards.
func RunDashboardTUI(trainee models.User, entries []workflow.DashboardEntry) error {
	p := tea.NewProgram(NewDashboardModel(trainee, entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunReviewTUI walks a mentor through the review form and calls submit
// with the collected input. The return value reports whether a review
// was submitted.
func RunReviewTUI(info ReviewInfo, submit func(check.SubmitReviewInput) error) (bool, error) {
	p := tea.NewProgram(NewReviewModel(info, submit), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(ReviewModel)
	if m.err != nil {
		return false, m.err
	}
	return m.submitted, nil
}
