// Package practice is the interactive practice session screen.
package practice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
	"tableflip.dev/uebung/pkg/session"
)

var (
	focusColor = lipgloss.Color("212")
	doneColor  = lipgloss.Color("42")
	faintColor = lipgloss.Color("241")
	errColor   = lipgloss.Color("203")

	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle = lipgloss.NewStyle().Width(14).Foreground(faintColor)
	focusStyle = lipgloss.NewStyle().Width(14).Foreground(focusColor).Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(doneColor).Bold(true)
	faintStyle = lipgloss.NewStyle().Foreground(faintColor)
	errStyle   = lipgloss.NewStyle().Foreground(errColor)
)

type field int

const (
	fieldSong field = iota
	fieldBPM
	fieldBook
	fieldPage
	fieldNotes
	fieldGlobalNotes
	fieldScale
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldSong:        "Song",
	fieldBPM:         "BPM",
	fieldBook:        "Book",
	fieldPage:        "Page",
	fieldNotes:       "Notes",
	fieldGlobalNotes: "Global notes",
	fieldScale:       "Add scale",
}

// Outcome is how the screen was left.
type Outcome int

const (
	// Finished means the last edits were committed.
	Finished Outcome = iota
	// Abandoned means pending edits were discarded.
	Abandoned
)

// Model renders one practice session and routes edits into it.
type Model struct {
	sess    *session.Session
	inputs  [fieldCount]textinput.Model
	loaded  [fieldCount]string
	focus   field
	values  session.Values
	tracks  bool
	width   int
	errMsg  string
	status  string
	outcome Outcome
	done    bool
}

// New builds the screen for sess.
func New(sess *session.Session) *Model {
	m := &Model{sess: sess, width: 80}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 500
		m.inputs[i] = in
	}
	m.inputs[fieldBPM].CharLimit = 3
	m.inputs[fieldScale].Placeholder = "KEY:MODE, e.g. G:Dur"
	m.load()
	m.inputs[m.focus].Focus()
	return m
}

// Outcome reports how the session ended.
func (m *Model) Outcome() Outcome { return m.outcome }

// Session returns the session the screen drives.
func (m *Model) Session() *session.Session { return m.sess }

// load refreshes the inputs from the session's effective values.
func (m *Model) load() {
	ex, ok := m.sess.Current()
	if !ok {
		return
	}
	v, err := m.sess.Effective()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.values = v
	m.tracks = scales.TracksScales(ex)
	m.loaded = [fieldCount]string{
		fieldSong:        v.Song,
		fieldBPM:         strconv.Itoa(v.BPM),
		fieldBook:        v.Book,
		fieldPage:        v.Page,
		fieldNotes:       v.Notes,
		fieldGlobalNotes: v.GlobalNotes,
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(m.loaded[i])
	}
	if m.focus == fieldScale && !m.tracks {
		m.inputs[m.focus].Blur()
		m.focus = fieldSong
		m.inputs[m.focus].Focus()
	}
}

// apply pushes every edited input into the session buffer.
func (m *Model) apply() error {
	for f := fieldSong; f < fieldScale; f++ {
		v := m.inputs[f].Value()
		if v == m.loaded[f] {
			continue
		}
		if err := m.set(f, v); err != nil {
			return err
		}
		m.loaded[f] = v
	}
	return nil
}

func (m *Model) set(f field, v string) error {
	switch f {
	case fieldSong:
		return m.sess.SetSong(v)
	case fieldBPM:
		bpm, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || bpm <= 0 {
			return fmt.Errorf("bpm must be a positive number, got %q", v)
		}
		return m.sess.SetBPM(bpm)
	case fieldBook:
		return m.sess.SetBook(v)
	case fieldPage:
		return m.sess.SetPage(v)
	case fieldNotes:
		return m.sess.SetNotes(v)
	case fieldGlobalNotes:
		return m.sess.SetGlobalNotes(v)
	}
	return nil
}

// move shifts focus by delta, wrapping around and skipping the scale input
// for exercises that do not track scales.
func (m *Model) move(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	n := int(fieldCount)
	f := field(((int(m.focus)+delta)%n + n) % n)
	if f == fieldScale && !m.tracks {
		f = field(((int(f)+delta)%n + n) % n)
	}
	m.focus = f
	return m.inputs[m.focus].Focus()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.sess.Abandon()
		m.outcome = Abandoned
		m.done = true
		return tea.Quit, true
	case "tab", "down":
		return m.move(1), true
	case "shift+tab", "up":
		return m.move(-1), true
	case "enter":
		if m.focus == fieldScale {
			m.addScale()
			return nil, true
		}
		if err := m.apply(); err != nil {
			m.errMsg = err.Error()
			return nil, true
		}
		m.errMsg = ""
		return m.move(1), true
	case "ctrl+t":
		m.step(func() error { return m.sess.SetCompleted(!m.values.Completed) }, "")
		return nil, true
	case "ctrl+x":
		if m.values.Completed {
			m.errMsg = errScalesLocked
			return nil, true
		}
		if n := len(m.values.Pairs); n > 0 {
			m.step(func() error {
				_, err := m.sess.RemoveScale(n - 1)
				return err
			}, "")
		}
		return nil, true
	case "ctrl+s":
		m.step(m.sess.Save, "saved")
		return nil, true
	case "ctrl+n", "pgdown":
		m.step(m.sess.Next, "")
		return nil, true
	case "ctrl+p", "pgup":
		m.step(m.sess.Previous, "")
		return nil, true
	case "ctrl+f":
		if err := m.apply(); err != nil {
			m.errMsg = err.Error()
			return nil, true
		}
		if err := m.sess.Finish(); err != nil {
			m.errMsg = err.Error()
			return nil, true
		}
		m.outcome = Finished
		m.done = true
		return tea.Quit, true
	}
	return nil, false
}

// step applies pending input, runs fn and reloads the screen. A failed
// commit keeps the screen and buffers as they were.
func (m *Model) step(fn func() error, status string) {
	if err := m.apply(); err != nil {
		m.errMsg = err.Error()
		return
	}
	if err := fn(); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.status = status
	m.load()
}

// Completed exercises show today's saved pairs, not the buffered selection.
const errScalesLocked = "scales are locked while completed; ctrl+t reopens"

func (m *Model) addScale() {
	if m.values.Completed {
		m.errMsg = errScalesLocked
		return
	}
	raw := m.inputs[fieldScale].Value()
	p, err := scales.ParsePair(raw)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.step(func() error {
		_, err := m.sess.AddScale(p.Key, p.Mode)
		return err
	}, "")
	if m.errMsg == "" {
		m.inputs[fieldScale].SetValue("")
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	ex, ok := m.sess.Current()
	if !ok {
		return faintStyle.Render("Nothing scheduled for this day.") + "\n"
	}

	var b strings.Builder
	day, _ := model.WeekdayOf(m.sess.Date())
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s · %d/%d", day, m.sess.Date(), m.sess.Index()+1, m.sess.Len())))
	b.WriteString("\n\n")

	status := faintStyle.Render("○ open")
	if m.values.Completed {
		status = doneStyle.Render("● completed")
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", lipgloss.NewStyle().Bold(true).Render(ex.Name), faintStyle.Render(ex.Category), status))
	if m.values.Today == nil && m.values.Last != nil {
		b.WriteString(faintStyle.Render(fmt.Sprintf("last practiced %s", m.values.Last.Date)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for f := fieldSong; f < fieldCount; f++ {
		if f == fieldScale && !m.tracks {
			continue
		}
		label := labelStyle.Render(fieldLabels[f])
		if f == m.focus {
			label = focusStyle.Render(fieldLabels[f])
		}
		b.WriteString(label)
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}

	if m.tracks {
		pairs := make([]string, len(m.values.Pairs))
		for i, p := range m.values.Pairs {
			pairs[i] = p.String()
		}
		text := "none"
		if len(pairs) > 0 {
			text = strings.Join(pairs, ", ")
		}
		b.WriteString(labelStyle.Render("Scales"))
		b.WriteString(lipgloss.NewStyle().Width(max(m.width-14, 20)).Render(text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(doneStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("tab move · enter apply · ctrl+t done · ctrl+n/p next/prev · ctrl+s save · ctrl+x drop scale · ctrl+f finish · esc abandon"))
	b.WriteString("\n")
	return b.String()
}
