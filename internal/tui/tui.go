// Package tui provides the terminal interaction for the album formatter:
// the shortlist picker for ambiguous matches, yes/no confirmations, and
// the assignment review table.
package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/album-formatter/internal/match"
	"github.com/handiism/album-formatter/internal/model"
	"github.com/handiism/album-formatter/internal/workflow"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// errAborted is returned when the user interrupts a prompt (ctrl+c).
var errAborted = fmt.Errorf("aborted by user")

// Interactor implements workflow.Interactor on the terminal. Each prompt
// runs its own Bubble Tea program, so the pipeline stays a plain
// sequential function between prompts.
type Interactor struct {
	// Verbose echoes LevelVerbose progress events.
	Verbose bool
}

var _ workflow.Interactor = (*Interactor)(nil)

// Resolve presents the shortlist for one unmatched file and blocks until
// the user picks a track, declines, or aborts.
func (i *Interactor) Resolve(ctx context.Context, candidate model.FileCandidate, options []match.Option) (int, bool, error) {
	items := make([]list.Item, len(options))
	for idx, opt := range options {
		items[idx] = trackItem{opt: opt}
	}

	delegate := list.NewDefaultDelegate()
	picker := list.New(items, delegate, 64, 16)
	picker.Title = fmt.Sprintf("No clear match for %q — pick the song (esc to give up)", candidate.Label)
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)

	final, err := tea.NewProgram(pickerModel{list: picker}, tea.WithContext(ctx)).Run()
	if err != nil {
		return 0, false, err
	}

	result := final.(pickerModel)
	if result.aborted {
		return 0, false, errAborted
	}
	if result.declined {
		return 0, false, nil
	}
	return result.choice, true, nil
}

// Confirm asks a yes/no question and blocks until answered.
func (i *Interactor) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question}, tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}
	result := final.(confirmModel)
	if result.aborted {
		return false, errAborted
	}
	return result.answer, nil
}

// ShowAssignment prints the resolved assignment as a table for review.
func (i *Interactor) ShowAssignment(assignment *match.Assignment) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s - %s",
		assignment.Album.ArtistLine(), assignment.Album.Name)))
	fmt.Println(renderAssignment(assignment))
}

// PrintProgress renders a workflow progress event to the terminal. Meant
// to be passed as the Manager's progress callback.
func (i *Interactor) PrintProgress(event workflow.ProgressEvent) {
	switch event.Level {
	case workflow.LevelVerbose:
		if i.Verbose {
			fmt.Println(dimStyle.Render(event.Message))
		}
	case workflow.LevelWarning:
		fmt.Println(warningStyle.Render(event.Message))
	case workflow.LevelError:
		fmt.Fprintln(os.Stderr, errorStyle.Render(event.Message))
	case workflow.LevelSuccess:
		fmt.Println(successStyle.Render(event.Message))
	default:
		fmt.Println(infoStyle.Render(event.Message))
	}
}

// trackItem adapts a shortlist option to the bubbles list item interface.
type trackItem struct {
	opt match.Option
}

func (t trackItem) Title() string {
	return fmt.Sprintf("%d-%02d  %s", t.opt.Track.Disc, t.opt.Track.Number, t.opt.Track.Name)
}

func (t trackItem) Description() string {
	desc := fmt.Sprintf("confidence %.2f", t.opt.Confidence)
	if line := t.opt.Track.ArtistLine(); line != "" {
		desc += "  " + line
	}
	return desc
}

func (t trackItem) FilterValue() string {
	return t.opt.Track.Name
}

// pickerModel is the Bubble Tea model for the shortlist picker.
type pickerModel struct {
	list     list.Model
	choice   int
	declined bool
	aborted  bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.choice = m.list.Index()
			return m, tea.Quit
		case "esc":
			m.declined = true
			return m, tea.Quit
		case "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, min(msg.Height, 16))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// confirmModel is the Bubble Tea model for yes/no questions.
type confirmModel struct {
	question string
	answer   bool
	aborted  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			m.answer = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.answer = false
			return m, tea.Quit
		case "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	return fmt.Sprintf("%s %s\n", m.question, dimStyle.Render("[y/n]"))
}
