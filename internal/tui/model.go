// Package tui is the interactive task list: a tabbed bubbletea program over
// the task file, with the deadline views as tables.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"tugas/internal/deadline"
	"tugas/internal/store"
	"tugas/internal/style"
	"tugas/internal/task"
)

// Tabs, numbered as shown to the user.
const (
	tabHome = iota + 1
	tabAll
	tabUrgent
	tabPressing
	tabCount = tabPressing
)

var tabNames = []string{"[1] Ringkasan", "[2] Semua", "[3] Mendesak", "[4] Tenggat"}

// refreshInterval re-samples the clock so tiers roll over at midnight while
// the program stays open.
const refreshInterval = time.Minute

const statusTTL = 3 * time.Second

const msgChanged = "❌ Daftar tugas berubah di luar aplikasi, data dimuat ulang. Coba lagi."


// Options wires the TUI to its collaborators.
type Options struct {
	Store  *store.Store
	Engine *deadline.Engine
	// Now defaults to time.Now.
	Now func() time.Time
	Log *zap.Logger
	// Changes, when set, triggers a reload on every receive.
	Changes <-chan struct{}
}

type tickMsg time.Time

type fileChangedMsg struct{}

type model struct {
	store   *store.Store
	engine  *deadline.Engine
	now     func() time.Time
	log     *zap.Logger
	changes <-chan struct{}

	activeTab int
	tables    [tabCount - 1]table.Model               // indexed by tab - tabAll
	views     [tabCount - 1][]deadline.ClassifiedTask // rows of tables
	tasks     []task.Task
	summary   deadline.Summary

	editing      bool
	editingRow   int // store index, -1 for a new task
	editingTask  task.Task
	editingField int
	inputs       []textinput.Model

	keys keyMap
	help help.Model

	statusMsg    string
	statusColor  string
	statusExpiry time.Time
	width        int
	height       int
}

func newModel(opts Options) model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	m := model{
		store:       opts.Store,
		engine:      opts.Engine,
		now:         opts.Now,
		log:         opts.Log.Named("tui"),
		changes:     opts.Changes,
		activeTab:   tabHome,
		keys:        defaultKeys(),
		help:        help.New(),
		statusColor: "86",
	}

	m.setupTables()
	m.reload()
	return m
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Changes == nil && opts.Store != nil {
		changes, err := opts.Store.Watch(ctx)
		if err != nil && opts.Log != nil {
			opts.Log.Warn("file watcher unavailable, external edits need a manual refresh", zap.Error(err))
		}
		opts.Changes = changes
	}

	p := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *model) setupTables() {
	columns := []table.Column{
		{Title: "No", Width: 4},
		{Title: "Nama Tugas", Width: 28},
		{Title: "Mata Pelajaran", Width: 18},
		{Title: "Deadline", Width: 12},
		{Title: "Status", Width: 26},
		{Title: "Sisa Waktu", Width: 16},
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	for i := range m.tables {
		m.tables[i] = table.New(
			table.WithColumns(columns),
			table.WithFocused(true),
			table.WithHeight(15),
		)
		m.tables[i].SetStyles(s)
	}
}

func (m *model) adjustLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	tableHeight := m.height - 8
	if tableHeight < 10 {
		tableHeight = 10
	}

	for i := range m.tables {
		m.tables[i].SetHeight(tableHeight)
	}
	m.help.Width = m.width
}

// reload reads the task file and re-evaluates every view.
func (m *model) reload() {
	tasks, err := m.store.LoadOrEmpty()
	if err != nil {
		m.log.Error("load tasks", zap.Error(err))
		m.setStatus("❌ Gagal memuat tugas: "+err.Error(), "196")
		return
	}
	m.tasks = tasks
	m.evaluate()
}

// evaluate samples the clock once and rebuilds all views from m.tasks.
func (m *model) evaluate() {
	now := m.now()

	all := m.engine.AnnotateAll(m.tasks, now)
	m.views[tabAll-tabAll] = all
	m.views[tabUrgent-tabAll] = m.engine.UrgentTasks(m.tasks, now)
	m.views[tabPressing-tabAll] = m.engine.PressingTasks(m.tasks, now)
	m.summary = deadline.Summarize(all)

	for i := range m.tables {
		m.tables[i].SetRows(taskRows(m.views[i]))
	}
}

func taskRows(cts []deadline.ClassifiedTask) []table.Row {
	rows := make([]table.Row, 0, len(cts))
	for _, ct := range cts {
		rows = append(rows, table.Row{
			strconv.Itoa(ct.Index + 1),
			ct.Task.Name,
			ct.Task.Subject,
			ct.Task.Deadline,
			style.Label(ct),
			style.Bar(ct),
		})
	}
	return rows
}

func (m *model) onTableTab() bool {
	return m.activeTab >= tabAll && m.activeTab <= tabCount
}

// selected returns the task under the cursor of the active table.
func (m *model) selected() (deadline.ClassifiedTask, bool) {
	if !m.onTableTab() {
		return deadline.ClassifiedTask{}, false
	}
	i := m.activeTab - tabAll
	cursor := m.tables[i].Cursor()
	if cursor < 0 || cursor >= len(m.views[i]) {
		return deadline.ClassifiedTask{}, false
	}
	return m.views[i][cursor], true
}

func (m *model) setStatus(msg, color string) {
	m.statusMsg = msg
	m.statusColor = color
	m.statusExpiry = m.now().Add(statusTTL)
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForChange(m.changes))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustLayout()
		return m, nil

	case tickMsg:
		m.evaluate()
		return m, tick()

	case fileChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditingKeys(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tabs):
			m.activeTab = int(msg.String()[0] - '0')
		case key.Matches(msg, m.keys.Left):
			m.activeTab--
			if m.activeTab < tabHome {
				m.activeTab = tabCount
			}
		case key.Matches(msg, m.keys.Right):
			m.activeTab++
			if m.activeTab > tabCount {
				m.activeTab = tabHome
			}
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if m.onTableTab() {
				i := m.activeTab - tabAll
				m.tables[i], _ = m.tables[i].Update(msg)
			}
		case key.Matches(msg, m.keys.Add):
			m.addNew()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Edit):
			if m.startEditing() {
				return m, textinput.Blink
			}
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
		case key.Matches(msg, m.keys.Refresh):
			m.reload()
			m.setStatus("🔄 Data dimuat ulang", "86")
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m *model) deleteSelected() {
	ct, ok := m.selected()
	if !ok {
		m.setStatus("❌ Tidak ada tugas untuk dihapus!", "196")
		return
	}

	removed, err := m.store.RemoveExpected(ct.Index, ct.Task)
	if errors.Is(err, store.ErrChanged) {
		m.reload()
		m.setStatus(msgChanged, "196")
		return
	}
	if err != nil {
		m.log.Error("remove task", zap.Int("index", ct.Index), zap.Error(err))
		m.setStatus("❌ "+err.Error(), "196")
		return
	}

	m.reload()
	m.setStatus(fmt.Sprintf("🗑️ Tugas '%s' berhasil dihapus!", removed.Name), "196")
}
