package practice

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/uebung/pkg/session"
)

// Run shows sess until it is finished or abandoned.
func Run(sess *session.Session) (Outcome, error) {
	if sess.State() != session.Active {
		return Abandoned, fmt.Errorf("practice: %w", session.ErrNotActive)
	}
	m := New(sess)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return Abandoned, err
	}
	return m.Outcome(), nil
}
