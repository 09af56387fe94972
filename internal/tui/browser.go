package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/studentdb/internal/store"
	"github.com/jeanpaul/studentdb/internal/student"
)

type recordItem struct {
	rec student.Record
}

func (i recordItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.rec.ID, i.rec.FullName())
}
func (i recordItem) Description() string { return i.rec.Course + " · " + i.rec.Grade }
func (i recordItem) FilterValue() string { return i.rec.FullName() + " " + i.rec.Course }

// Browser is a scrollable, filterable view of every record. Pressing d deletes
// the selected record through the repository.
type Browser struct {
	list     list.Model
	repo     store.Repository
	status   string
	failed   bool
	quitting bool
}

func NewBrowser(repo store.Repository) Browser {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DimGreen)

	l := list.New(nil, d, 60, 20)
	l.Title = "Students"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle

	b := Browser{list: l, repo: repo}
	b.reload()
	return b
}

func (b *Browser) reload() {
	records := b.repo.List()
	items := make([]list.Item, 0, len(records))
	for _, r := range records {
		items = append(items, recordItem{rec: r})
	}
	b.list.SetItems(items)
}

// Selected returns the highlighted record, if any.
func (b Browser) Selected() (student.Record, bool) {
	it, ok := b.list.SelectedItem().(recordItem)
	if !ok {
		return student.Record{}, false
	}
	return it.rec, true
}

func (b Browser) Init() tea.Cmd {
	return nil
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width, msg.Height-2)
		return b, nil

	case tea.KeyMsg:
		// while typing a filter every key belongs to the list
		if b.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			b.quitting = true
			return b, tea.Quit
		case "d":
			rec, ok := b.Selected()
			if !ok {
				return b, nil
			}
			if err := b.repo.Delete(rec.ID); err != nil {
				b.status, b.failed = "Error: "+err.Error(), true
			} else {
				b.status, b.failed = fmt.Sprintf("Student with ID %d deleted successfully.", rec.ID), false
			}
			b.reload()
			return b, nil
		case "r":
			b.reload()
			b.status, b.failed = "Reloaded.", false
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b Browser) View() string {
	if b.quitting {
		return ""
	}
	status := HelpStyle.Render("d delete · r reload · / filter · q quit")
	if b.status != "" {
		if b.failed {
			status = ErrorStyle.Render(b.status)
		} else {
			status = SuccessStyle.Render(b.status)
		}
	}
	return b.list.View() + "\n" + status
}

// RunBrowser starts the browser full screen and blocks until the user quits.
func RunBrowser(repo store.Repository) error {
	_, err := tea.NewProgram(NewBrowser(repo), tea.WithAltScreen()).Run()
	return err
}
