package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krendl/spendwise/internal/tracker"
)

// Settings rows: budget, then one row per currency rate, then actions.
type settingsRow struct {
	label  string
	value  string
	action string // non-empty for action rows
}

func (a *App) settingsRows() []settingsRow {
	s := a.state.Settings
	rows := []settingsRow{
		{label: "Base currency", value: s.BaseCurrency, action: "cycleCurrency"},
		{label: "Budget", value: strconv.FormatFloat(s.Budget, 'f', 2, 64), action: "editBudget"},
	}
	for _, code := range sortedCurrencyCodes(s) {
		c := s.Currencies[code]
		rows = append(rows, settingsRow{
			label:  code + " rate",
			value:  strconv.FormatFloat(c.Rate, 'f', -1, 64),
			action: "editRate:" + code,
		})
	}
	rows = append(rows,
		settingsRow{label: "Export data", value: "write JSON file", action: "export"},
		settingsRow{label: "Import data", value: "replace from JSON file", action: "import"},
		settingsRow{label: "Clear all data", value: "restore defaults", action: "clear"},
	)
	return rows
}

func sortedCurrencyCodes(s tracker.Settings) []string {
	codes := make([]string, 0, len(s.Currencies))
	for code := range s.Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (a *App) updateSettingsIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.settingsRows()
	switch msg.String() {
	case "up", "k":
		if a.setCursor > 0 {
			a.setCursor--
		}
	case "down", "j":
		if a.setCursor < len(rows)-1 {
			a.setCursor++
		}
	case "enter":
		return a.activateSettingsRow(rows[a.setCursor])
	}
	return a, nil
}

func (a *App) activateSettingsRow(row settingsRow) (tea.Model, tea.Cmd) {
	switch {
	case row.action == "cycleCurrency":
		a.cycleBaseCurrency()
	case row.action == "editBudget" || strings.HasPrefix(row.action, "editRate:"):
		a.setInput.SetValue(row.value)
		a.setInput.Placeholder = row.label
		a.setInput.Focus()
		a.setMode = settingsModeEdit
		return a, textinput.Blink
	case row.action == "export":
		a.setInput.SetValue("spendwise-export.json")
		a.setInput.Placeholder = "export path"
		a.setInput.Focus()
		a.setMode = settingsModeExport
		return a, textinput.Blink
	case row.action == "import":
		a.setInput.SetValue("")
		a.setInput.Placeholder = "import path"
		a.setInput.Focus()
		a.setMode = settingsModeImport
		return a, textinput.Blink
	case row.action == "clear":
		a.setMode = settingsModeConfirmClear
	}
	return a, nil
}

func (a *App) cycleBaseCurrency() {
	codes := sortedCurrencyCodes(a.state.Settings)
	if len(codes) == 0 {
		return
	}
	next := codes[0]
	for i, code := range codes {
		if code == a.state.Settings.BaseCurrency {
			next = codes[(i+1)%len(codes)]
			break
		}
	}
	a.store.UpdateSettings(tracker.SettingsPatch{BaseCurrency: &next})
	a.status = "Base currency: " + next
}

func (a *App) updateSettingsEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.setMode == settingsModeConfirmClear {
		switch msg.String() {
		case "y":
			a.clearAllData()
			a.setMode = settingsModeIdle
		case "n", "esc":
			a.setMode = settingsModeIdle
			a.status = ""
		}
		return a, nil
	}

	switch msg.String() {
	case "esc":
		a.setMode = settingsModeIdle
		a.setInput.Blur()
		return a, nil
	case "enter":
		value := strings.TrimSpace(a.setInput.Value())
		mode := a.setMode
		a.setMode = settingsModeIdle
		a.setInput.Blur()
		switch mode {
		case settingsModeEdit:
			a.applySettingsEdit(value)
		case settingsModeExport:
			if value != "" {
				a.applyExport(value)
			}
		case settingsModeImport:
			if value != "" {
				a.applyImport(value)
			}
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.setInput, cmd = a.setInput.Update(msg)
	return a, cmd
}

func (a *App) applySettingsEdit(value string) {
	row := a.settingsRows()[a.setCursor]
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		a.status = "Enter a non-negative number"
		return
	}

	if row.action == "editBudget" {
		a.store.UpdateSettings(tracker.SettingsPatch{Budget: &n})
		a.status = "Budget updated"
		return
	}

	code := strings.TrimPrefix(row.action, "editRate:")
	currencies := a.state.Settings.Clone().Currencies
	c := currencies[code]
	c.Rate = n
	currencies[code] = c
	a.store.UpdateSettings(tracker.SettingsPatch{Currencies: currencies})
	a.status = code + " rate updated"
}

func (a *App) viewSettingsBody() string {
	if a.setMode == settingsModeConfirmClear {
		return errorStyle.Render("Clear all data? This cannot be undone.") + "\n\n" +
			mutedStyle.Render("y: clear everything  n: keep data") + "\n"
	}

	var b strings.Builder
	for i, row := range a.settingsRows() {
		prefix := "  "
		if i == a.setCursor {
			prefix = cursorStyle.Render("> ")
		}
		value := row.value
		if i == a.setCursor && a.setMode != settingsModeIdle {
			value = a.setInput.View()
		}
		b.WriteString(fmt.Sprintf("%s%-16s %s\n", prefix, row.label, value))
	}
	b.WriteString("\n" + mutedStyle.Render("enter: change  esc: cancel") + "\n")
	return b.String()
}
