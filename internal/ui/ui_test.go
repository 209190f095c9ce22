package ui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/todo"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	ctrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, titles ...string) (Model, *todo.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	store := todo.NewStore(mem, todo.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return time.UnixMilli(1000) },
	})
	store.Initialize()
	for _, title := range titles {
		store.SetPendingInput(title)
		require.True(t, store.AddItem())
	}
	return New(store, config.Default()), store, mem
}

func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func titles(s *todo.Store) []string {
	var out []string
	for _, it := range s.Snapshot().Items {
		out = append(out, it.Title)
	}
	return out
}

func TestAddTask(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("a"))
	assert.Equal(t, modeAdd, m.mode)

	m = press(m, runes("buy milk"))
	assert.Equal(t, "buy milk", store.Snapshot().PendingInput)

	m = press(m, enter)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Added task", m.status)
	assert.Equal(t, []string{"buy milk"}, titles(store))
	assert.Empty(t, store.Snapshot().PendingInput)
	assert.Contains(t, m.View(), "buy milk")
}

func TestAddBlankTitleStaysInAddMode(t *testing.T) {
	m, store, mem := newTestModel(t)

	m = press(m, runes("a"), runes("   "), enter)
	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, msgEmptyTitle, m.status)
	assert.Empty(t, store.Snapshot().Items)
	assert.Zero(t, mem.Saves)
}

func TestAddModeTypesKeymapKeys(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("a"), runes("q"), runes("d"), runes("C"))
	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, "qdC", store.Snapshot().PendingInput)
}

func TestAddCancelKeepsDraft(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("a"), runes("draft"), esc)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "draft", store.Snapshot().PendingInput)
	assert.Empty(t, store.Snapshot().Items)

	m = press(m, runes("a"))
	assert.Equal(t, "draft", m.input.Value())
}

func TestToggleTask(t *testing.T) {
	m, store, _ := newTestModel(t, "buy milk", "walk dog")

	m = press(m, space)
	items := store.Snapshot().Items
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)
	assert.Equal(t, 1, m.cursor, "cursor advances after toggle")

	press(m, runes("k"), space)
	assert.False(t, store.Snapshot().Items[0].Completed)
}

func TestDeleteTaskConfirm(t *testing.T) {
	m, store, _ := newTestModel(t, "a", "b")

	m = press(m, runes("j"), runes("d"))
	assert.True(t, m.confirmDel)
	assert.Equal(t, `Delete "b"? y/n`, m.status)

	m = press(m, runes("n"))
	assert.False(t, m.confirmDel)
	assert.Equal(t, []string{"a", "b"}, titles(store))

	m = press(m, runes("d"), runes("y"))
	assert.Equal(t, []string{"a"}, titles(store))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "Deleted task", m.status)
}

func TestEditTask(t *testing.T) {
	m, store, _ := newTestModel(t, "buy milk")

	m = press(m, runes("e"))
	assert.Equal(t, modeEdit, m.mode)
	require.NotNil(t, store.Snapshot().Edit)
	assert.Equal(t, "buy milk", store.Snapshot().Edit.Value)

	m = press(m, ctrlU, runes("buy bread"))
	assert.Equal(t, "buy bread", store.Snapshot().Edit.Value)

	m = press(m, enter)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Saved", m.status)
	assert.Nil(t, store.Snapshot().Edit)
	assert.Equal(t, []string{"buy bread"}, titles(store))
}

func TestEnterStartsEdit(t *testing.T) {
	m, store, _ := newTestModel(t, "a")

	m = press(m, enter)
	assert.Equal(t, modeEdit, m.mode)
	assert.NotNil(t, store.Snapshot().Edit)
}

func TestEditCancel(t *testing.T) {
	m, store, mem := newTestModel(t, "buy milk")
	saves := mem.Saves

	m = press(m, runes("e"), ctrlU, runes("nope"), esc)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Edit cancelled", m.status)
	assert.Nil(t, store.Snapshot().Edit)
	assert.Equal(t, []string{"buy milk"}, titles(store))
	assert.Equal(t, saves, mem.Saves)
}

func TestEditBlankCancels(t *testing.T) {
	m, store, _ := newTestModel(t, "buy milk")

	m = press(m, runes("e"), ctrlU, enter)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Edit cancelled", m.status)
	assert.Equal(t, []string{"buy milk"}, titles(store))
}

func TestClearAll(t *testing.T) {
	m, store, _ := newTestModel(t, "a", "b", "c")

	m = press(m, runes("C"))
	assert.True(t, m.confirmClear)
	assert.Equal(t, "Delete all 3 tasks? y/n", m.status)

	m = press(m, runes("y"))
	assert.False(t, m.confirmClear)
	assert.Empty(t, store.Snapshot().Items)
	assert.Contains(t, m.View(), "Nothing to do yet")
}

func TestClearEmptyList(t *testing.T) {
	m, _, mem := newTestModel(t)

	m = press(m, runes("C"))
	assert.False(t, m.confirmClear)
	assert.Equal(t, "Nothing to clear", m.status)
	assert.Zero(t, mem.Saves)
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")

	m = press(m, runes("k"))
	assert.Equal(t, 0, m.cursor)
	m = press(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 1, m.cursor)
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsCounts(t *testing.T) {
	m, store, _ := newTestModel(t, "a", "b")
	store.ToggleCompleted(store.Snapshot().Items[0].ID)
	m.refresh()

	view := m.View()
	assert.Contains(t, view, "✔ 1")
	assert.Contains(t, view, "• 1")
	assert.Contains(t, view, "Total 2")
}

func TestCustomKeymap(t *testing.T) {
	mem := storage.NewMemory()
	store := todo.NewStore(mem, todo.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	cfg := config.Default()
	cfg.Keys.Add = "n"
	m := New(store, cfg)

	m = press(m, runes("a"))
	assert.Equal(t, modeList, m.mode)
	m = press(m, runes("n"))
	assert.Equal(t, modeAdd, m.mode)
}
