package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ashwin/ledgerpad/internal/export"
	"github.com/ashwin/ledgerpad/internal/ledger"
	"github.com/ashwin/ledgerpad/internal/service"
	"github.com/ashwin/ledgerpad/widgets"
)

func (a *App) View() string {
	switch a.state {
	case viewSetup:
		return a.renderAuth("Create your account")
	case viewLogin:
		return a.renderAuth("Unlock your ledger")
	}

	var body string
	switch a.state {
	case viewTransactions:
		body = a.renderTransactions()
	case viewAdd:
		body = a.renderAdd()
	case viewBudgets:
		body = a.renderBudgets()
	case viewCharts:
		body = a.renderCharts()
	case viewSearch:
		body = a.renderSearch()
	case viewChat:
		body = a.renderChat()
	case viewExport:
		body = a.renderExport()
	}

	sections := []string{a.renderTabs(), body}
	if a.ledgerWarning != "" {
		sections = append(sections, warnStyle.Render(a.ledgerWarning))
	}
	if a.budgetWarning != "" {
		sections = append(sections, warnStyle.Render(a.budgetWarning))
	}
	if a.status != "" {
		sections = append(sections, a.status)
	}
	sections = append(sections, helpStyle.Render(a.helpLine()))
	return strings.Join(sections, "\n\n")
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(mainTabs))
	for _, tab := range mainTabs {
		label := fmt.Sprintf("[%s] %s", tab.key, tab.label)
		if tab.state == a.state {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) helpLine() string {
	switch a.state {
	case viewAdd:
		return "←/→ toggle type • tab next field • enter save • esc back"
	case viewBudgets:
		if a.budgetForm {
			return "tab next field • enter save • esc cancel"
		}
		return "↑/↓ move • n new • enter edit • x delete • q quit"
	case viewSearch:
		return "type to search • enter run • esc back"
	case viewChat:
		return "enter send • ↑/↓ scroll • esc back • ctrl+c quit"
	case viewExport:
		return "↑/↓ choose format • enter export • q quit"
	}
	return "↑/↓ move • letters switch tabs • q quit"
}

func (a *App) renderAuth(title string) string {
	labels := []string{"Username", "Passphrase", "Confirm"}
	if a.state == viewLogin {
		labels = []string{"Passphrase"}
	}
	var lines []string
	for i, in := range a.authInputs {
		lines = append(lines, fmt.Sprintf("%-12s %s", labels[i], in.View()))
	}
	box := widgets.Box{
		Title:      title,
		Content:    strings.Join(lines, "\n"),
		TitleStyle: titleStyle,
	}
	out := box.Render(min(a.width, 60))
	if a.status != "" {
		out += "\n" + a.status
	}
	return out + "\n" + helpStyle.Render("tab next field • enter submit • ctrl+c quit")
}

func (a *App) renderTransactions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Transactions"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		incomeStyle.Render(fmt.Sprintf("income %s%.2f", a.cfg.UI.CurrencySymbol, a.income)),
		expenseStyle.Render(fmt.Sprintf("expenses %s%.2f", a.cfg.UI.CurrencySymbol, a.expenses)),
		fmt.Sprintf("balance %s%.2f", a.cfg.UI.CurrencySymbol, a.balance)))
	b.WriteString("\n")
	if len(a.transactions) == 0 {
		b.WriteString(helpStyle.Render("no transactions yet; press [a] to add one"))
		return b.String()
	}
	for i, t := range a.transactions {
		b.WriteString(a.transactionLine(t, i == a.txCursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) transactionLine(t ledger.Transaction, selected bool) string {
	amount := fmt.Sprintf("%s%.2f", a.cfg.UI.CurrencySymbol, t.Amount)
	if t.Kind == ledger.Income {
		amount = incomeStyle.Render("+" + amount)
	} else {
		amount = expenseStyle.Render("-" + amount)
	}
	cursor := "  "
	line := fmt.Sprintf("#%-4d %-12s %-10s %s  %s", t.ID, t.Date, string(t.Kind), amount, t.Description)
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	return cursor + line
}

func (a *App) renderAdd() string {
	kind := string(a.addKind)
	if a.addKind == ledger.Income {
		kind = incomeStyle.Render(kind)
	} else {
		kind = expenseStyle.Render(kind)
	}
	return strings.Join([]string{
		titleStyle.Render("Add transaction"),
		"",
		fmt.Sprintf("%-12s %s (←/→ to toggle)", "Type", kind),
		fmt.Sprintf("%-12s %s", "Amount", a.addInputs[0].View()),
		fmt.Sprintf("%-12s %s", "Description", a.addInputs[1].View()),
	}, "\n")
}

func (a *App) renderBudgets() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Budgets"))
	b.WriteString("\n\n")
	for _, alert := range a.alerts {
		if strings.Contains(alert, "OVER") {
			b.WriteString(errStyle.Render(alert))
		} else {
			b.WriteString(warnStyle.Render(alert))
		}
		b.WriteString("\n")
	}
	if len(a.alerts) > 0 {
		b.WriteString("\n")
	}
	if a.budgetForm {
		b.WriteString(fmt.Sprintf("%-12s %s\n", "Category", a.budgetInputs[0].View()))
		b.WriteString(fmt.Sprintf("%-12s %s\n", "Limit", a.budgetInputs[1].View()))
		return strings.TrimRight(b.String(), "\n")
	}
	for i, bud := range a.budgets {
		cursor := "  "
		if i == a.budgetCursor {
			cursor = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%-15s %s%8.2f of %s%8.2f  %5.1f%%",
			bud.Category, a.cfg.UI.CurrencySymbol, bud.Spent, a.cfg.UI.CurrencySymbol, bud.Limit, bud.PercentUsed())
		switch {
		case bud.IsOverBudget():
			line = errStyle.Render(line)
		case bud.IsWarning():
			line = warnStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderCharts() string {
	width := a.width
	if width <= 0 {
		width = 80
	}

	byCategory := map[string]float64{}
	for _, t := range a.transactions {
		if t.Kind != ledger.Expense {
			continue
		}
		byCategory[a.services.Budget.Categorize(t.Description)] += t.Amount
	}
	points := make([]widgets.ChartPoint, 0, len(byCategory))
	for _, bud := range a.budgets {
		if v := byCategory[bud.Category]; v > 0 {
			points = append(points, widgets.ChartPoint{Label: bud.Category, Value: v})
		}
	}

	bar := widgets.BarChart{
		Title:    titleStyle.Render("Spending by category"),
		Data:     points,
		BarStyle: barStyle,
	}

	daily := service.DailyExpenses(a.transactions)
	trendData := make([]widgets.TrendPoint, len(daily))
	for i, d := range daily {
		trendData[i] = widgets.TrendPoint{Date: d.Date, Value: d.Value}
	}
	trend := widgets.TrendChart{
		Title:     titleStyle.Render("Daily expenses"),
		Data:      trendData,
		LineStyle: barStyle,
		AxisStyle: helpStyle,
	}

	months := service.MonthlyTotals(a.transactions)
	monthPoints := make([]widgets.ChartPoint, 0, len(months))
	for _, m := range months {
		monthPoints = append(monthPoints, widgets.ChartPoint{Label: m.Label(), Value: m.Expenses})
	}
	monthly := widgets.BarChart{
		Title:    titleStyle.Render("Monthly expenses"),
		Data:     monthPoints,
		BarStyle: barStyle,
	}

	return strings.Join([]string{
		bar.Render(width, 12),
		trend.Render(width, 10),
		monthly.Render(width, 12),
	}, "\n\n")
}

func (a *App) renderSearch() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(a.searchInput.View())
	b.WriteString("\n\n")
	if !a.searched {
		b.WriteString(helpStyle.Render("fuzzy matching; typos are fine"))
		return b.String()
	}
	if len(a.searchResults) == 0 {
		b.WriteString(helpStyle.Render("no matches"))
		return b.String()
	}
	for _, r := range a.searchResults {
		b.WriteString(a.transactionLine(r.Transaction, false))
		b.WriteString(helpStyle.Render(fmt.Sprintf("  (%.0f%% match)", r.Score*100)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderChat() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Financial advisor"))
	b.WriteString("\n\n")
	if len(a.chatLines) == 0 {
		b.WriteString(helpStyle.Render("ask anything about budgeting or saving"))
		b.WriteString("\n")
	} else {
		b.WriteString(a.chatView.View())
		b.WriteString("\n")
	}
	if a.chatBusy {
		b.WriteString(helpStyle.Render("thinking..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.chatInput.View())
	return b.String()
}

func (a *App) renderExport() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Export"))
	b.WriteString("\n\n")
	labels := map[export.Format]string{
		export.FormatCSV:  "CSV spreadsheet",
		export.FormatText: "Plain-text report",
		export.FormatJSON: "JSON dump",
	}
	for i, f := range exportFormats {
		cursor := "  "
		line := fmt.Sprintf("%-6s %s", string(f), labels[f])
		if i == a.exportCursor {
			cursor = cursorStyle.Render("> ")
			line = activeTabStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	if a.lastExport != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("last export: " + a.lastExport))
	}
	return strings.TrimRight(b.String(), "\n")
}
