package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tugas/internal/deadline"
	"tugas/internal/store"
	"tugas/internal/task"
)

const (
	fieldName = iota
	fieldSubject
	fieldDeadline
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nama Tugas:", "Mata Pelajaran:", "Deadline (DD-MM-YYYY):"}

func newInputs(t task.Task) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 120
	}
	inputs[fieldDeadline].CharLimit = len(deadline.Layout)
	inputs[fieldDeadline].Placeholder = "DD-MM-YYYY"

	inputs[fieldName].SetValue(t.Name)
	inputs[fieldSubject].SetValue(t.Subject)
	inputs[fieldDeadline].SetValue(t.Deadline)
	inputs[fieldName].Focus()
	return inputs
}

func (m *model) addNew() {
	m.editing = true
	m.editingRow = -1
	m.editingField = fieldName
	m.inputs = newInputs(task.Task{})
}

func (m *model) startEditing() bool {
	ct, ok := m.selected()
	if !ok {
		return false
	}
	m.editing = true
	m.editingRow = ct.Index
	m.editingTask = ct.Task
	m.editingField = fieldName
	m.inputs = newInputs(ct.Task)
	return true
}

func (m *model) focusField(i int) {
	m.editingField = i
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.inputs[i].Focus()
}

func (m *model) stopEditing() {
	m.editing = false
	m.inputs = nil
}

func (m model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		m.setStatus("❌ Batal", "196")
		return m, nil
	case "enter":
		m.saveEdit()
		return m, nil
	case "tab", "down":
		m.focusField((m.editingField + 1) % len(m.inputs))
	case "shift+tab", "up":
		m.focusField((m.editingField - 1 + len(m.inputs)) % len(m.inputs))
	default:
		var cmd tea.Cmd
		m.inputs[m.editingField], cmd = m.inputs[m.editingField].Update(msg)
		return m, cmd
	}
	return m, nil
}

// saveEdit writes the form through the store. On a validation error the form
// stays open with the offending field focused.
func (m *model) saveEdit() {
	t := task.Task{
		Name:     m.inputs[fieldName].Value(),
		Subject:  m.inputs[fieldSubject].Value(),
		Deadline: m.inputs[fieldDeadline].Value(),
	}

	var err error
	if m.editingRow < 0 {
		t, err = m.store.Add(t)
	} else {
		t, err = m.store.Update(m.editingRow, m.editingTask, t)
	}

	if errors.Is(err, store.ErrChanged) {
		m.stopEditing()
		m.reload()
		m.setStatus(msgChanged, "196")
		return
	}
	if err != nil {
		m.setStatus(formError(err), "196")
		switch {
		case errors.Is(err, deadline.ErrInvalidDeadline):
			m.focusField(fieldDeadline)
		case errors.Is(err, store.ErrEmptyField) && t.Name == "":
			m.focusField(fieldName)
		case errors.Is(err, store.ErrEmptyField):
			m.focusField(fieldSubject)
		default:
			m.log.Error("save task", zap.Error(err))
		}
		return
	}

	verb := "diperbarui"
	if m.editingRow < 0 {
		verb = "ditambahkan"
	}
	m.stopEditing()
	m.reload()
	m.setStatus(fmt.Sprintf("✅ Tugas '%s' berhasil %s!", t.Name, verb), "82")
}

func formError(err error) string {
	switch {
	case errors.Is(err, deadline.ErrInvalidDeadline):
		return "❌ Format tanggal salah! Gunakan format DD-MM-YYYY"
	case errors.Is(err, store.ErrEmptyField):
		return "❌ " + err.Error()
	default:
		return "❌ Gagal menyimpan: " + err.Error()
	}
}
