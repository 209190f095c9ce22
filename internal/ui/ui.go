package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/config"
	"todo/internal/todo"
)

const msgEmptyTitle = "Title cannot be empty"

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type Model struct {
	store        *todo.Store
	keys         keyMap
	help         help.Model
	snap         todo.Snapshot
	cursor       int
	mode         mode
	input        textinput.Model
	status       string
	confirmDel   bool
	pendingDel   *todo.Item
	confirmClear bool
}

// New builds the model around an already initialized store.
func New(store *todo.Store, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		input:  ti,
		mode:   modeList,
		status: "Press 'a' to add, space to toggle, 'e' to edit, 'd' to delete.",
	}
	m.refresh()
	return m
}

func Run(store *todo.Store, cfg config.Config) error {
	program := tea.NewProgram(New(store, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.confirmClear {
			return m.updateClearConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(msg)
	case modeEdit:
		return m.updateEditMode(msg)
	}
	return m.updateListMode(msg)
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if !m.store.AddItem() {
			m.status = msgEmptyTitle
			return m, nil
		}
		m.refresh()
		m.cursor = clampCursor(len(m.snap.Items)-1, len(m.snap.Items))
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.store.SetPendingInput(m.input.Value())
		m.refresh()
		return m, cmd
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.store.CancelEdit()
		m.leaveEdit("Edit cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.snap.Edit == nil {
			m.leaveEdit("")
			return m, nil
		}
		if m.store.CommitEdit(m.snap.Edit.ID) {
			m.leaveEdit("Saved")
		} else {
			m.leaveEdit("Edit cancelled")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.store.SetEditingValue(m.input.Value())
		m.refresh()
		return m, cmd
	}
}

func (m *Model) leaveEdit(status string) {
	m.refresh()
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeList
	m.status = status
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snap.Items)
	switch {
	case msg.String() == "ctrl+c", key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if n == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, n)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, n)
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Placeholder = "What needs doing?"
		m.input.SetValue(m.snap.PendingInput)
		m.input.CursorEnd()
		m.status = "Add mode: type a title and press Enter"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		if n == 0 {
			return m, nil
		}
		m.store.ToggleCompleted(m.snap.Items[m.cursor].ID)
		m.refresh()
		m.cursor = clampCursor(m.cursor+1, len(m.snap.Items))
		m.status = "Toggled task"
	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return m, nil
		}
		it := m.snap.Items[m.cursor]
		m.confirmDel = true
		m.pendingDel = &it
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", it.Title)
	case key.Matches(msg, m.keys.Edit):
		if n == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		it := m.snap.Items[m.cursor]
		m.store.BeginEdit(it.ID, it.Title)
		m.refresh()
		m.mode = modeEdit
		m.input.Placeholder = "Edit item title..."
		m.input.SetValue(it.Title)
		m.input.CursorEnd()
		m.status = "Edit mode: Enter to save, Esc to cancel"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		if n == 0 {
			m.status = "Nothing to clear"
			return m, nil
		}
		m.confirmClear = true
		m.status = fmt.Sprintf("Delete all %d tasks? y/n", n)
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		m.store.RemoveItem(m.pendingDel.ID)
		m.refresh()
		m.status = "Deleted task"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Clear cancelled"
		m.confirmClear = false
		return m, nil
	case "y", "Y":
		m.store.ClearAll()
		m.refresh()
		m.status = "Cleared all tasks"
		m.confirmClear = false
		return m, nil
	default:
		return m, nil
	}
}

// refresh re-reads the store after an operation.
func (m *Model) refresh() {
	m.snap = m.store.Snapshot()
	m.cursor = clampCursor(m.cursor, len(m.snap.Items))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if len(m.snap.Items) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to do yet. Press 'a' to add one. 📝"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString("Add Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status == msgEmptyTitle {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return panelString(b.String())
}

func (m Model) renderHeader() string {
	done, pending := m.snap.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todo"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(m.snap.Items),
	)
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, it := range m.snap.Items {
		cursor := "  "
		if m.cursor == i && m.mode == modeList {
			cursor = selectedStyle.Render(">") + " "
		}

		checkbox := mutedStyle.Render(boxUnchecked)
		title := it.Title
		if it.Completed {
			checkbox = successStyle.Render(boxChecked)
			title = doneStyle.Render(it.Title)
		}
		if m.mode == modeEdit && m.snap.Edit != nil && m.snap.Edit.ID == it.ID {
			title = m.input.View()
		}

		b.WriteString(fmt.Sprintf("%s%s %s", cursor, checkbox, title))
		b.WriteString("\n")
	}
	return b.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
