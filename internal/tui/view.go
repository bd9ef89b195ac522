package tui

import "strings"

const appName = "Spendwise"

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(appName) + "  " + a.viewTabs())
	b.WriteString("\n\n")

	switch a.view {
	case viewDashboard:
		b.WriteString(a.viewDashboardBody())
	case viewRecords:
		b.WriteString(a.viewRecordsBody())
	case viewSettings:
		b.WriteString(a.viewSettingsBody())
	}

	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(a.footerHelp()))
	b.WriteString("\n")
	return b.String()
}

func (a *App) viewTabs() string {
	var parts []string
	for _, v := range []appView{viewDashboard, viewRecords, viewSettings} {
		label := string(v)
		if v == a.view {
			parts = append(parts, activeTab.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}

func (a *App) footerHelp() string {
	switch a.view {
	case viewRecords:
		if a.recMode == recordsModeBrowse {
			return "a add  e edit  d delete  / search  p patterns  c clear  s sort  o order  tab view  q quit"
		}
		return "enter confirm  esc cancel"
	case viewSettings:
		return "↑↓ select  enter change  tab view  q quit"
	default:
		return "tab view  q quit"
	}
}
