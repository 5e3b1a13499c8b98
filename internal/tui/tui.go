package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// RunSessionReview starts the interactive session review browser
func RunSessionReview(sessions []models.Session) error {
	model := NewReviewModel(sessions)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
