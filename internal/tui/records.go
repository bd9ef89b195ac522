package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krendl/spendwise/internal/search"
	"github.com/krendl/spendwise/internal/tracker"
	"github.com/krendl/spendwise/internal/validate"
)

var sortCycle = []string{
	tracker.SortByDate,
	tracker.SortByDescription,
	tracker.SortByAmount,
	tracker.SortByCategory,
}

func (a *App) updateRecordsBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.visibleRows()
	switch msg.String() {
	case "up", "k":
		if a.recCursor > 0 {
			a.recCursor--
		}
	case "down", "j":
		if a.recCursor < len(rows)-1 {
			a.recCursor++
		}
	case "a":
		a.store.SetEditingID("")
		a.resetForm()
		a.recMode = recordsModeForm
		return a, textinput.Blink
	case "e":
		if a.recCursor < len(rows) {
			t := rows[a.recCursor]
			a.store.SetEditingID(t.ID)
			a.fillForm(t)
			a.recMode = recordsModeForm
			return a, textinput.Blink
		}
	case "d":
		if a.recCursor < len(rows) {
			if !a.store.DeleteTransaction(rows[a.recCursor].ID) {
				a.status = "Record vanished; nothing deleted"
			} else {
				a.status = "Deleted"
				if a.recCursor > 0 {
					a.recCursor--
				}
			}
		}
	case "/":
		a.searchInput.SetValue(a.state.SearchPattern)
		a.searchInput.Focus()
		a.recMode = recordsModeSearch
		return a, textinput.Blink
	case "c":
		a.store.SetSearchPattern("")
		a.status = ""
	case "p":
		suggestions := search.Suggestions()
		a.suggestIdx = (a.suggestIdx + 1) % len(suggestions)
		s := suggestions[a.suggestIdx]
		a.store.SetSearchPattern(s.Pattern)
		a.status = s.Label
	case "s":
		a.store.SetSorting(nextSortKey(a.state.SortBy), a.state.SortOrder)
	case "o":
		order := tracker.SortAsc
		if a.state.SortOrder == tracker.SortAsc {
			order = tracker.SortDesc
		}
		a.store.SetSorting(a.state.SortBy, order)
	}
	return a, nil
}

func nextSortKey(cur string) string {
	for i, k := range sortCycle {
		if k == cur {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return tracker.SortByDate
}

func (a *App) updateRecordsEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.recMode == recordsModeSearch {
		switch msg.String() {
		case "esc", "enter":
			a.searchInput.Blur()
			a.recMode = recordsModeBrowse
			return a, nil
		}
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		// live filtering, like typing in the original search box
		a.store.SetSearchPattern(a.searchInput.Value())
		return a, cmd
	}

	switch msg.String() {
	case "esc":
		a.store.SetEditingID("")
		a.resetForm()
		a.recMode = recordsModeBrowse
		return a, nil
	case "tab", "down":
		a.focusField((a.focusIndex + 1) % formFieldCount)
		return a, textinput.Blink
	case "shift+tab", "up":
		a.focusField((a.focusIndex + formFieldCount - 1) % formFieldCount)
		return a, textinput.Blink
	case "enter":
		if a.focusIndex < formFieldCount-1 {
			a.focusField(a.focusIndex + 1)
			return a, textinput.Blink
		}
		a.submitForm()
		return a, nil
	}

	var cmd tea.Cmd
	a.inputs[a.focusIndex], cmd = a.inputs[a.focusIndex].Update(msg)
	if a.focusIndex == formCategory {
		a.refreshCategoryHint()
	}
	return a, cmd
}

func (a *App) focusField(i int) {
	a.inputs[a.focusIndex].Blur()
	a.focusIndex = i
	a.inputs[i].Focus()
}

func (a *App) resetForm() {
	for i := range a.inputs {
		a.inputs[i].SetValue("")
		a.inputs[i].Blur()
	}
	a.focusIndex = formDescription
	a.inputs[formDescription].Focus()
	a.formErrors = nil
	a.categoryHint = ""
}

func (a *App) fillForm(t tracker.Transaction) {
	a.resetForm()
	a.inputs[formDescription].SetValue(t.Description)
	a.inputs[formAmount].SetValue(strconv.FormatFloat(t.Amount, 'f', -1, 64))
	a.inputs[formCategory].SetValue(t.Category)
	a.inputs[formDate].SetValue(t.Date)
}

// submitForm gates user input through the validation engine before any
// store mutation, per the store's contract.
func (a *App) submitForm() {
	rec := validate.Record{
		Description: a.inputs[formDescription].Value(),
		Amount:      a.inputs[formAmount].Value(),
		Category:    a.inputs[formCategory].Value(),
		Date:        a.inputs[formDate].Value(),
	}
	if errs := validate.Check(rec); len(errs) > 0 {
		a.formErrors = errs
		return
	}

	amount, err := strconv.ParseFloat(rec.Amount, 64)
	if err != nil {
		a.formErrors = map[string]string{validate.FieldAmount: "Amount must be a number"}
		return
	}

	if id := a.state.EditingID; id != "" {
		patch := tracker.TransactionPatch{
			Description: &rec.Description,
			Amount:      &amount,
			Category:    &rec.Category,
			Date:        &rec.Date,
		}
		if !a.store.UpdateTransaction(id, patch) {
			a.status = "Record vanished; nothing updated"
		} else {
			a.status = "Updated " + rec.Description
		}
		a.store.SetEditingID("")
	} else {
		t := a.store.AddTransaction(rec.Description, amount, rec.Category, rec.Date)
		a.status = "Added " + t.Description
	}
	a.resetForm()
	a.recMode = recordsModeBrowse
}

func (a *App) viewRecordsBody() string {
	if a.recMode == recordsModeForm {
		return a.viewForm()
	}

	var b strings.Builder
	b.WriteString(a.viewSearchBar())
	b.WriteString("\n\n")

	rows := a.visibleRows()
	if a.recCursor >= len(rows) && len(rows) > 0 {
		a.recCursor = len(rows) - 1
	}
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No transactions yet. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	re := search.Compile(a.state.SearchPattern, a.cfg.UI.CaseSensitiveSearch)
	mark := func(s string) string { return matchStyle.Render(s) }

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-12s %-34s %-16s %10s",
		a.columnTitle(tracker.SortByDate, "DATE"),
		a.columnTitle(tracker.SortByDescription, "DESCRIPTION"),
		a.columnTitle(tracker.SortByCategory, "CATEGORY"),
		a.columnTitle(tracker.SortByAmount, "AMOUNT"))))
	b.WriteString("\n")
	for i, t := range rows {
		prefix := "  "
		if i == a.recCursor {
			prefix = cursorStyle.Render("> ")
		}
		amountStr := strconv.FormatFloat(t.Amount, 'f', 2, 64)
		amountPad := ""
		if n := 10 - len([]rune(amountStr)); n > 0 {
			amountPad = strings.Repeat(" ", n)
		}
		line := prefix +
			highlightCell(t.Date, 12, re, mark) + " " +
			highlightCell(t.Description, 34, re, mark) + " " +
			highlightCell(t.Category, 16, re, mark) + " " +
			amountPad + search.Highlight(amountStr, re, mark)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) columnTitle(key, title string) string {
	if a.state.SortBy != key {
		return title
	}
	if a.state.SortOrder == tracker.SortAsc {
		return title + " ↑"
	}
	return title + " ↓"
}

func (a *App) viewSearchBar() string {
	var b strings.Builder
	if a.recMode == recordsModeSearch {
		b.WriteString("Search: " + a.searchInput.View())
	} else if a.state.SearchPattern != "" {
		b.WriteString("Search: " + a.state.SearchPattern)
	} else {
		b.WriteString(mutedStyle.Render("Search: (press / to filter, p for example patterns)"))
	}
	if a.state.SearchPattern != "" && search.Compile(a.state.SearchPattern, a.cfg.UI.CaseSensitiveSearch) == nil {
		b.WriteString("  " + errorStyle.Render("invalid pattern — showing all records"))
	}
	return b.String()
}

func (a *App) viewForm() string {
	var b strings.Builder
	title := "Add transaction"
	if a.state.EditingID != "" {
		title = "Edit transaction"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	labels := []string{"Description", "Amount", "Category", "Date"}
	errKeys := []string{validate.FieldDescription, validate.FieldAmount, validate.FieldCategory, validate.FieldDate}
	for i, in := range a.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", labels[i], in.View()))
		if msg, ok := a.formErrors[errKeys[i]]; ok {
			b.WriteString("             " + errorStyle.Render(msg) + "\n")
		}
		if i == formDescription {
			if msg, ok := a.formErrors[validate.FieldDuplicateWords]; ok {
				b.WriteString("             " + errorStyle.Render(msg) + "\n")
			}
		}
		if i == formCategory && a.categoryHint != "" {
			b.WriteString("             " + mutedStyle.Render("did you mean "+a.categoryHint+"?") + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("enter: next/save  esc: cancel") + "\n")
	return b.String()
}

// highlightCell fits s to exactly width visible runes, truncating with
// an ellipsis. Matching runs on the unpadded text so anchored patterns
// still mark their match, then the pad goes outside the styling so it
// never moves columns.
func highlightCell(s string, width int, re *regexp.Regexp, mark search.Marker) string {
	r := []rune(s)
	if len(r) > width {
		s = string(r[:width-1]) + "…"
		r = []rune(s)
	}
	return search.Highlight(s, re, mark) + strings.Repeat(" ", width-len(r))
}
