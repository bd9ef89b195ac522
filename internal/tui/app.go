// Package tui is the terminal presentation layer. It subscribes to the
// tracker store once, re-renders from the snapshot on every notification
// and pushes user input back through the validation engine before any
// store mutation.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/krendl/spendwise/internal/config"
	"github.com/krendl/spendwise/internal/search"
	"github.com/krendl/spendwise/internal/storage"
	"github.com/krendl/spendwise/internal/tracker"
	"github.com/krendl/spendwise/internal/validate"
)

type appView string

const (
	viewDashboard appView = "dashboard"
	viewRecords   appView = "records"
	viewSettings  appView = "settings"
)

type recordsMode string

const (
	recordsModeBrowse recordsMode = "browse"
	recordsModeForm   recordsMode = "form"
	recordsModeSearch recordsMode = "search"
)

type settingsMode string

const (
	settingsModeIdle         settingsMode = "idle"
	settingsModeEdit         settingsMode = "edit"
	settingsModeExport       settingsMode = "export"
	settingsModeImport       settingsMode = "import"
	settingsModeConfirmClear settingsMode = "confirmClear"
)

// Form field order; must line up with newFormInputs.
const (
	formDescription = iota
	formAmount
	formCategory
	formDate
	formFieldCount
)

// App ties together the three views.
type App struct {
	store   *tracker.Store
	backend tracker.Backend
	cfg     config.Config
	log     zerolog.Logger

	state tracker.State
	unsub func()

	view   appView
	status string
	width  int
	height int

	// records
	recMode      recordsMode
	recCursor    int
	inputs       []textinput.Model
	focusIndex   int
	formErrors   map[string]string
	categoryHint string
	searchInput  textinput.Model
	suggestIdx   int

	// settings
	setMode   settingsMode
	setCursor int
	setInput  textinput.Model
}

// New builds the app and subscribes it to the store. Initialize must
// have been called on the store before the program runs.
func New(store *tracker.Store, backend tracker.Backend, cfg config.Config, log zerolog.Logger) *App {
	a := &App{
		store:      store,
		backend:    backend,
		cfg:        cfg,
		log:        log,
		view:       viewDashboard,
		recMode:    recordsModeBrowse,
		setMode:    settingsModeIdle,
		inputs:     newFormInputs(),
		suggestIdx: -1,
	}
	a.searchInput = newInput("regex pattern", 40)
	a.setInput = newInput("", 40)
	a.unsub = store.Subscribe(func(st tracker.State) { a.state = st })
	a.state = store.GetState()
	return a
}

func newFormInputs() []textinput.Model {
	labels := []string{"description", "amount", "category", "date (YYYY-MM-DD)"}
	inputs := make([]textinput.Model, formFieldCount)
	for i, l := range labels {
		inputs[i] = newInput(l, 32)
	}
	inputs[0].Focus()
	return inputs
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = width
	return in
}

func (a *App) Init() tea.Cmd { return textinput.Blink }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// text-entry modes capture everything except their own exits
	if a.view == viewRecords && a.recMode != recordsModeBrowse {
		return a.updateRecordsEntry(msg)
	}
	if a.view == viewSettings && a.setMode != settingsModeIdle {
		return a.updateSettingsEntry(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if a.unsub != nil {
			a.unsub()
		}
		return a, tea.Quit
	case "tab":
		a.nextView(1)
		return a, nil
	case "shift+tab":
		a.nextView(-1)
		return a, nil
	}

	switch a.view {
	case viewRecords:
		return a.updateRecordsBrowse(msg)
	case viewSettings:
		return a.updateSettingsIdle(msg)
	}
	return a, nil
}

func (a *App) nextView(dir int) {
	order := []appView{viewDashboard, viewRecords, viewSettings}
	for i, v := range order {
		if v == a.view {
			a.view = order[(i+dir+len(order))%len(order)]
			a.status = ""
			return
		}
	}
}

// visibleRows applies the search cursor and sort cursor to the snapshot,
// mirroring what the records table shows.
func (a *App) visibleRows() []tracker.Transaction {
	rows := search.Filter(a.state.Transactions, a.state.SearchPattern, a.cfg.UI.CaseSensitiveSearch)
	return a.store.SortTransactions(rows)
}

// refreshCategoryHint recomputes the did-you-mean hint for the category
// field. The configured list is a soft constraint only.
func (a *App) refreshCategoryHint() {
	entered := a.inputs[formCategory].Value()
	a.categoryHint = validate.SuggestCategory(entered, a.state.Settings.Categories)
}

func (a *App) applyImport(path string) {
	txns, err := storage.ImportFromFile(path)
	if err != nil {
		a.log.Warn().Err(err).Str("path", path).Msg("import rejected")
		a.status = "Import failed: " + err.Error()
		return
	}
	a.store.SetTransactions(txns)
	a.status = "Imported " + strconv.Itoa(len(txns)) + " transactions"
}

func (a *App) applyExport(path string) {
	if err := storage.ExportToFile(path, a.state.Transactions); err != nil {
		a.status = "Export failed: " + err.Error()
		return
	}
	a.status = "Exported " + strconv.Itoa(len(a.state.Transactions)) + " transactions to " + path
}

func (a *App) clearAllData() {
	if !a.backend.ClearAllData() {
		a.status = "Clear failed; data untouched"
		return
	}
	a.store.Initialize()
	a.status = "All data cleared"
}
