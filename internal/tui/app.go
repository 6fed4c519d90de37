// Package tui is the bubbletea front end. It renders the services; all
// ledger and budget rules live below it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashwin/ledgerpad/internal/advisor"
	"github.com/ashwin/ledgerpad/internal/auth"
	"github.com/ashwin/ledgerpad/internal/config"
	"github.com/ashwin/ledgerpad/internal/export"
	"github.com/ashwin/ledgerpad/internal/ledger"
	"github.com/ashwin/ledgerpad/internal/service"
	"github.com/ashwin/ledgerpad/internal/vault"
)

// Services groups the application services the TUI drives.
type Services struct {
	Ledger   *service.LedgerService
	Budget   *service.BudgetService
	Search   *service.SearchService
	Exporter *export.Exporter
}

type appState string

const (
	viewSetup        appState = "setup"
	viewLogin        appState = "login"
	viewTransactions appState = "transactions"
	viewAdd          appState = "add"
	viewBudgets      appState = "budgets"
	viewCharts       appState = "charts"
	viewSearch       appState = "search"
	viewChat         appState = "chat"
	viewExport       appState = "export"
)

// tabs shown once authenticated, in display order.
var mainTabs = []struct {
	state appState
	label string
	key   string
}{
	{viewTransactions, "Transactions", "t"},
	{viewAdd, "Add", "a"},
	{viewBudgets, "Budgets", "b"},
	{viewCharts, "Charts", "g"},
	{viewSearch, "Search", "s"},
	{viewChat, "Advisor", "c"},
	{viewExport, "Export", "e"},
}

type keyMap struct {
	Quit key.Binding
	Back key.Binding
	Up   key.Binding
	Down key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	session  *auth.Session
	services Services
	advisor  *advisor.Client
	conv     *advisor.Conversation
	log      *slog.Logger

	state         appState
	width         int
	height        int
	status        string
	ledgerWarning string
	budgetWarning string

	// auth form: username, passphrase, confirm (setup) / passphrase (login)
	authInputs []textinput.Model
	authFocus  int

	transactions []ledger.Transaction
	txCursor     int
	income       float64
	expenses     float64
	balance      float64

	budgets   []service.Budget
	alerts    []string
	addKind   ledger.Kind
	addInputs []textinput.Model // amount, description
	addFocus  int

	budgetInputs []textinput.Model // category, limit
	budgetFocus  int
	budgetForm   bool
	budgetCursor int

	searchInput   textinput.Model
	searchResults []service.SearchResult
	searched      bool

	chatInput textinput.Model
	chatView  viewport.Model
	chatLines []string
	chatBusy  bool

	exportCursor int
	lastExport   string
}

var exportFormats = []export.Format{export.FormatCSV, export.FormatText, export.FormatJSON}

func New(ctx context.Context, cfg config.Config, session *auth.Session, services Services, chat *advisor.Client, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		session:  session,
		services: services,
		advisor:  chat,
		conv:     advisor.NewConversation(),
		log:      logger,
		addKind:  ledger.Expense,
	}
	if session.FirstRun() {
		a.state = viewSetup
		a.authInputs = newAuthInputs(true)
	} else {
		a.state = viewLogin
		a.authInputs = newAuthInputs(false)
	}
	a.authInputs[0].Focus()

	a.addInputs = []textinput.Model{newInput("amount", 12), newInput("description", 48)}
	a.budgetInputs = []textinput.Model{newInput("category", 24), newInput("limit", 12)}
	a.searchInput = newInput("search transactions", 48)
	a.chatInput = newInput("ask the advisor", 64)
	a.chatView = viewport.New(80, 12)
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func newAuthInputs(setup bool) []textinput.Model {
	if setup {
		user := newInput("username", 32)
		pass := newInput("passphrase", 64)
		pass.EchoMode = textinput.EchoPassword
		confirm := newInput("confirm passphrase", 64)
		confirm.EchoMode = textinput.EchoPassword
		return []textinput.Model{user, pass, confirm}
	}
	pass := newInput("passphrase", 64)
	pass.EchoMode = textinput.EchoPassword
	return []textinput.Model{pass}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// ---------------------------------------------------------------------------
// messages
// ---------------------------------------------------------------------------

type ledgerMsg struct {
	transactions []ledger.Transaction
	income       float64
	expenses     float64
	balance      float64
	warning      string
}

type budgetsMsg struct {
	budgets []service.Budget
	alerts  []string
	warning string
}

type searchMsg []service.SearchResult

type chatReplyMsg struct {
	reply string
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

type statusMsg string

type errMsg struct{ error }

// ---------------------------------------------------------------------------
// commands
// ---------------------------------------------------------------------------

func (a *App) loadLedger() tea.Cmd {
	return func() tea.Msg {
		var m ledgerMsg
		txs, err := a.services.Ledger.All()
		if err != nil {
			if errors.Is(err, vault.ErrCorruptedLedger) {
				// surface it, then proceed with an empty ledger
				m.warning = "ledger file could not be decrypted; showing empty ledger"
			} else {
				return errMsg{err}
			}
		}
		m.transactions = txs
		for _, t := range txs {
			switch t.Kind {
			case ledger.Income:
				m.income += t.Amount
			case ledger.Expense:
				m.expenses += t.Amount
			}
		}
		m.balance = m.income - m.expenses
		return m
	}
}

func (a *App) loadBudgets() tea.Cmd {
	return func() tea.Msg {
		var m budgetsMsg
		budgets, err := a.services.Budget.AllBudgets()
		switch {
		case errors.Is(err, vault.ErrMalformedBudgets):
			m.warning = "budgets.json could not be parsed; showing default limits"
		case err != nil && !errors.Is(err, vault.ErrCorruptedLedger):
			return errMsg{err}
		}
		alerts, err := a.services.Budget.Alerts()
		if err != nil && !errors.Is(err, vault.ErrCorruptedLedger) && !errors.Is(err, vault.ErrMalformedBudgets) {
			return errMsg{err}
		}
		m.budgets = budgets
		m.alerts = alerts
		return m
	}
}

func (a *App) addTransaction(kind ledger.Kind, amountText, description string) tea.Cmd {
	return func() tea.Msg {
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil {
			return errMsg{&ledger.ValidationError{Field: "amount", Reason: "not a number"}}
		}
		tx, err := a.services.Ledger.Add(kind, amount, strings.TrimSpace(description))
		if err != nil {
			return errMsg{err}
		}
		a.log.Info("transaction added", "id", tx.ID, "kind", string(tx.Kind), "amount", tx.Amount)
		return statusMsg(fmt.Sprintf("added #%d: %s %s%.2f", tx.ID, tx.Kind, a.cfg.UI.CurrencySymbol, tx.Amount))
	}
}

func (a *App) saveBudget(category, limitText string) tea.Cmd {
	return func() tea.Msg {
		limit, err := strconv.ParseFloat(strings.TrimSpace(limitText), 64)
		if err != nil {
			return errMsg{&ledger.ValidationError{Field: "limit", Reason: "not a number"}}
		}
		if err := a.services.Budget.SetBudget(strings.TrimSpace(category), limit); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("budget %s set to %s%.2f", category, a.cfg.UI.CurrencySymbol, limit))
	}
}

func (a *App) deleteBudget(category string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Budget.DeleteBudget(category); err != nil {
			return errMsg{err}
		}
		return statusMsg("deleted budget " + category)
	}
}

func (a *App) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.services.Search.Search(query, service.SearchFilter{})
		if err != nil {
			return errMsg{err}
		}
		return searchMsg(res)
	}
}

func (a *App) sendChat(input string) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.advisor.Chat(a.ctx, a.conv, input)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (a *App) runExport(format export.Format) tea.Cmd {
	return func() tea.Msg {
		txs, err := a.services.Ledger.All()
		if err != nil && !errors.Is(err, vault.ErrCorruptedLedger) {
			return exportDoneMsg{err: err}
		}
		path, err := a.services.Exporter.Export(format, txs)
		return exportDoneMsg{path: path, err: err}
	}
}

// ---------------------------------------------------------------------------
// update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.chatView.Width = m.Width
		a.chatView.Height = max(3, m.Height-8)
		a.refreshChat()
		return a, nil
	case ledgerMsg:
		a.transactions = m.transactions
		a.income, a.expenses, a.balance = m.income, m.expenses, m.balance
		a.ledgerWarning = m.warning
		if a.txCursor >= len(a.transactions) {
			a.txCursor = max(0, len(a.transactions)-1)
		}
		return a, nil
	case budgetsMsg:
		a.budgets = m.budgets
		a.alerts = m.alerts
		a.budgetWarning = m.warning
		if a.budgetCursor >= len(a.budgets) {
			a.budgetCursor = max(0, len(a.budgets)-1)
		}
		return a, nil
	case searchMsg:
		a.searchResults = m
		a.searched = true
		return a, nil
	case chatReplyMsg:
		a.chatBusy = false
		if m.err != nil {
			a.status = errStyle.Render("advisor: " + humanErr(m.err))
			return a, nil
		}
		a.chatLines = append(a.chatLines, "Advisor: "+m.reply)
		a.refreshChat()
		return a, nil
	case exportDoneMsg:
		if m.err != nil {
			a.status = errStyle.Render("export failed: " + humanErr(m.err))
			return a, nil
		}
		a.lastExport = m.path
		a.status = statusStyle.Render("exported to " + m.path)
		return a, nil
	case statusMsg:
		a.status = statusStyle.Render(string(m))
		return a, tea.Batch(a.loadLedger(), a.loadBudgets())
	case errMsg:
		a.status = errStyle.Render(humanErr(m.error))
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case viewSetup, viewLogin:
		return a.handleAuthKey(m)
	case viewAdd:
		return a.handleAddKey(m)
	case viewBudgets:
		if a.budgetForm {
			return a.handleBudgetFormKey(m)
		}
	case viewSearch:
		return a.handleSearchKey(m)
	case viewChat:
		return a.handleChatKey(m)
	}
	return a.handleMainKey(m)
}

func (a *App) handleMainKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, keys.Quit) {
		return a, tea.Quit
	}
	for _, tab := range mainTabs {
		if m.String() == tab.key {
			return a, a.switchTo(tab.state)
		}
	}
	switch {
	case key.Matches(m, keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, keys.Down):
		a.moveCursor(1)
	}
	if a.state == viewBudgets {
		switch m.String() {
		case "n":
			a.openBudgetForm("", "")
			return a, nil
		case "enter":
			if len(a.budgets) > 0 {
				b := a.budgets[a.budgetCursor]
				a.openBudgetForm(b.Category, strconv.FormatFloat(b.Limit, 'f', -1, 64))
			}
			return a, nil
		case "backspace", "delete", "x":
			if len(a.budgets) > 0 {
				return a, a.deleteBudget(a.budgets[a.budgetCursor].Category)
			}
			return a, nil
		}
	}
	if a.state == viewExport && m.String() == "enter" {
		return a, a.runExport(exportFormats[a.exportCursor])
	}
	return a, nil
}

func (a *App) switchTo(state appState) tea.Cmd {
	a.state = state
	a.status = ""
	switch state {
	case viewAdd:
		a.addFocus = 0
		a.addInputs[0].Focus()
		a.addInputs[1].Blur()
		return textinput.Blink
	case viewSearch:
		a.searchInput.Focus()
		return textinput.Blink
	case viewChat:
		a.chatInput.Focus()
		return textinput.Blink
	case viewBudgets:
		a.budgetForm = false
		return a.loadBudgets()
	case viewTransactions, viewCharts:
		return tea.Batch(a.loadLedger(), a.loadBudgets())
	}
	return nil
}

func (a *App) moveCursor(delta int) {
	switch a.state {
	case viewTransactions:
		a.txCursor = clamp(a.txCursor+delta, 0, max(0, len(a.transactions)-1))
	case viewBudgets:
		a.budgetCursor = clamp(a.budgetCursor+delta, 0, max(0, len(a.budgets)-1))
	case viewExport:
		a.exportCursor = clamp(a.exportCursor+delta, 0, len(exportFormats)-1)
	}
}

func (a *App) handleAuthKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		a.focusAuth(a.authFocus + 1)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.focusAuth(a.authFocus - 1)
		return a, nil
	case tea.KeyEnter:
		if a.authFocus < len(a.authInputs)-1 {
			a.focusAuth(a.authFocus + 1)
			return a, nil
		}
		return a.submitAuth()
	}
	var cmd tea.Cmd
	a.authInputs[a.authFocus], cmd = a.authInputs[a.authFocus].Update(m)
	return a, cmd
}

func (a *App) focusAuth(idx int) {
	a.authFocus = clamp(idx, 0, len(a.authInputs)-1)
	for i := range a.authInputs {
		if i == a.authFocus {
			a.authInputs[i].Focus()
		} else {
			a.authInputs[i].Blur()
		}
	}
}

func (a *App) submitAuth() (tea.Model, tea.Cmd) {
	if a.state == viewSetup {
		_, err := a.session.Setup(a.authInputs[0].Value(), a.authInputs[1].Value(), a.authInputs[2].Value())
		if err != nil {
			a.status = errStyle.Render(humanErr(err))
			if errors.Is(err, auth.ErrPassphraseMismatch) {
				a.authInputs[1].SetValue("")
				a.authInputs[2].SetValue("")
				a.focusAuth(1)
			}
			return a, nil
		}
	} else {
		_, err := a.session.Login(a.authInputs[0].Value())
		if err != nil {
			a.status = errStyle.Render(humanErr(err))
			a.authInputs[0].SetValue("")
			return a, nil
		}
	}
	user, _ := a.session.Current()
	a.log.Info("session started", "user", user.Username)
	a.state = viewTransactions
	a.status = ""
	return a, tea.Batch(a.loadLedger(), a.loadBudgets())
}

func (a *App) handleAddKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		return a, a.switchTo(viewTransactions)
	case tea.KeyTab, tea.KeyShiftTab:
		a.addFocus = (a.addFocus + 1) % 2
		if a.addFocus == 0 {
			a.addInputs[0].Focus()
			a.addInputs[1].Blur()
		} else {
			a.addInputs[1].Focus()
			a.addInputs[0].Blur()
		}
		return a, nil
	case tea.KeyLeft, tea.KeyRight:
		if a.addKind == ledger.Expense {
			a.addKind = ledger.Income
		} else {
			a.addKind = ledger.Expense
		}
		return a, nil
	case tea.KeyEnter:
		if a.addFocus == 0 {
			a.addFocus = 1
			a.addInputs[0].Blur()
			a.addInputs[1].Focus()
			return a, nil
		}
		amount, desc := a.addInputs[0].Value(), a.addInputs[1].Value()
		a.addInputs[0].SetValue("")
		a.addInputs[1].SetValue("")
		a.addFocus = 0
		a.addInputs[0].Focus()
		a.addInputs[1].Blur()
		return a, a.addTransaction(a.addKind, amount, desc)
	}
	var cmd tea.Cmd
	a.addInputs[a.addFocus], cmd = a.addInputs[a.addFocus].Update(m)
	return a, cmd
}

func (a *App) openBudgetForm(category, limit string) {
	a.budgetForm = true
	a.budgetFocus = 0
	a.budgetInputs[0].SetValue(category)
	a.budgetInputs[1].SetValue(limit)
	a.budgetInputs[0].Focus()
	a.budgetInputs[1].Blur()
}

func (a *App) handleBudgetFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.budgetForm = false
		return a, nil
	case tea.KeyTab, tea.KeyShiftTab:
		a.budgetFocus = (a.budgetFocus + 1) % 2
		if a.budgetFocus == 0 {
			a.budgetInputs[0].Focus()
			a.budgetInputs[1].Blur()
		} else {
			a.budgetInputs[1].Focus()
			a.budgetInputs[0].Blur()
		}
		return a, nil
	case tea.KeyEnter:
		if a.budgetFocus == 0 {
			a.budgetFocus = 1
			a.budgetInputs[0].Blur()
			a.budgetInputs[1].Focus()
			return a, nil
		}
		a.budgetForm = false
		return a, tea.Sequence(
			a.saveBudget(a.budgetInputs[0].Value(), a.budgetInputs[1].Value()),
			a.loadBudgets(),
		)
	}
	var cmd tea.Cmd
	a.budgetInputs[a.budgetFocus], cmd = a.budgetInputs[a.budgetFocus].Update(m)
	return a, cmd
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.searchInput.SetValue("")
		a.searchResults = nil
		a.searched = false
		return a, a.switchTo(viewTransactions)
	case tea.KeyEnter:
		return a, a.runSearch(a.searchInput.Value())
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(m)
	return a, cmd
}

func (a *App) handleChatKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		return a, a.switchTo(viewTransactions)
	case tea.KeyEnter:
		input := strings.TrimSpace(a.chatInput.Value())
		if input == "" || a.chatBusy {
			return a, nil
		}
		a.chatInput.SetValue("")
		a.chatLines = append(a.chatLines, "You: "+input)
		a.chatBusy = true
		a.refreshChat()
		return a, a.sendChat(input)
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(m)
		return a, cmd
	}
	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(m)
	return a, cmd
}

// refreshChat resyncs the scrollback viewport and pins it to the newest line.
func (a *App) refreshChat() {
	a.chatView.SetContent(strings.Join(a.chatLines, "\n"))
	a.chatView.GotoBottom()
}

func humanErr(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, auth.ErrPassphraseMismatch):
		return "passphrases do not match"
	case errors.Is(err, advisor.ErrNoAPIKey):
		return "no API key configured (set OPENROUTER_API_KEY)"
	}
	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
