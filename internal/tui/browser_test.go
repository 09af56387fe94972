package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/studentdb/internal/store"
	"github.com/jeanpaul/studentdb/internal/student"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.NewFileBackend(filepath.Join(t.TempDir(), "db.data")))
	require.NoError(t, err)
	_, err = s.Add("Ada", "Lovelace", "Math", "A")
	require.NoError(t, err)
	_, err = s.Add("Alan", "Turing", "Logic", "B+")
	require.NoError(t, err)
	return s
}

func TestBrowserListsRecords(t *testing.T) {
	s := newTestStore(t)
	b := NewBrowser(s)

	// Send WindowSize first to init dimensions
	updated, _ := b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	b = updated.(Browser)

	view := b.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "Alan Turing")
	assert.Contains(t, view, "Logic · B+")

	rec, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.ID)
}

func TestBrowserDeleteSelected(t *testing.T) {
	s := newTestStore(t)
	b := NewBrowser(s)
	updated, _ := b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	b = updated.(Browser)

	updated, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	b = updated.(Browser)

	assert.Equal(t, 1, s.Len())
	_, err := s.Get(1)
	assert.Error(t, err)
	assert.Contains(t, b.View(), "Student with ID 1 deleted successfully.")
	assert.NotContains(t, b.View(), "Ada Lovelace")
}

func TestBrowserQuit(t *testing.T) {
	b := NewBrowser(newTestStore(t))
	updated, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.(Browser).View())
}

func TestRecordCard(t *testing.T) {
	rec := student.New(3, "Grace", "Hopper", "CS", "a")
	card := RecordCard(rec)
	for _, want := range []string{"Student ID:", "3", "Grace", "Hopper", "CS", "Grade:", "A"} {
		assert.Contains(t, card, want)
	}
}

func TestRenderMenu(t *testing.T) {
	out := RenderMenu("Student Database Management System", []MenuEntry{
		{Key: "1", Title: "Add Student Record"},
		{Key: "6", Title: "Exit"},
	})
	assert.Contains(t, out, "Student Database Management System")
	assert.True(t, strings.Contains(out, "1.") && strings.Contains(out, "Add Student Record"))
	assert.Contains(t, out, "6.")
}

func TestMakeBar(t *testing.T) {
	assert.Equal(t, "██░░", MakeBar(0.5, 4))
	assert.Equal(t, "████", MakeBar(2, 4))
	assert.Equal(t, "░░░░", MakeBar(-1, 4))
}

func TestApplyTheme(t *testing.T) {
	require.NoError(t, ApplyTheme("mono"))
	require.NoError(t, ApplyTheme("green"))
	assert.Error(t, ApplyTheme("purple"))
}
