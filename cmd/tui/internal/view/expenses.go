package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type expenseState int

const (
	expenseStateList expenseState = iota
	expenseStateAddForm
	expenseStateRevertForm
)

// expenseItem wraps an expense to implement list.Item.
type expenseItem struct {
	e ledger.Expense
}

func (i expenseItem) Title() string {
	entryType := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.e.Type))

	return fmt.Sprintf("%s  %s  %s  %s: %s",
		FormatDate(i.e.Date), FormatAmount(i.e.Amount), entryType, i.e.Category, i.e.Vendor)
}

func (i expenseItem) Description() string {
	if i.e.BookingID != "" {
		return fmt.Sprintf("Booking: %s", i.e.BookingID)
	}

	return "General venue expense"
}

func (i expenseItem) FilterValue() string {
	return i.e.Vendor + " " + i.e.Category + " " + i.e.BookingID
}

type ExpensesModel struct {
	CommonModel
	store *ledger.Store

	state  expenseState
	list   list.Model
	form   *huh.Form
	status string

	// Form field bindings
	formBookingID string
	formDate      string
	formCategory  string
	formVendor    string
	formAmount    string
	formMethod    string
	formNote      string
	formReason    string
}

func NewExpensesModel(store *ledger.Store) ExpensesModel {
	l := list.New([]list.Item{}, bookingItemDelegate{}, 0, 0)
	l.Title = "Expenses"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	m := ExpensesModel{
		store: store,
		list:  l,
	}
	m.refreshItems()

	return m
}

func (m ExpensesModel) Title() string { return "Manage Expenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expenseStateList:
		return "Esc: back | a: add | r: revert selected | /: filter"
	case expenseStateAddForm, expenseStateRevertForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m ExpensesModel) Init() tea.Cmd {
	return nil
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case expenseResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = expenseStateList
		m.form = nil
		m.refreshItems()

		return m, nil
	}

	switch m.state {
	case expenseStateList:
		return m.updateList(msg)
	case expenseStateAddForm, expenseStateRevertForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "a":
				return m.startAddForm()
			case "r":
				return m.startRevertForm()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ExpensesModel) startAddForm() (tea.Model, tea.Cmd) {
	m.formBookingID = ""
	m.formDate = FormatDate(timeNow())
	m.formCategory = ledger.FallbackCategoryID
	m.formVendor = ""
	m.formAmount = ""
	m.formMethod = string(ledger.MethodCash)
	m.formNote = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(validateDate),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(m.categoryOptions()...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("vendor").
				Title("Vendor").
				Value(&m.formVendor).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("vendor cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount (₹)").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("method").
				Title("Method").
				Options(methodOptions()...).
				Value(&m.formMethod),

			huh.NewInput().
				Key("booking_id").
				Title("Booking (optional)").
				Placeholder("HG/2025/001").
				Value(&m.formBookingID),

			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&m.formNote),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = expenseStateAddForm

	return m, m.form.Init()
}

func (m ExpensesModel) startRevertForm() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(expenseItem)
	if !ok {
		return m, nil
	}

	if selected.e.Type == ledger.ExpenseReverted {
		m.status = "Reversal entries cannot be reverted."
		return m, nil
	}

	m.formReason = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("reason").
				Title("Revert reason").
				Value(&m.formReason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("reason cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = expenseStateRevertForm

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expenseStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == expenseStateAddForm {
		return m, m.addExpenseCmd()
	}

	return m, m.revertExpenseCmd()
}

func (m ExpensesModel) View() string {
	switch m.state {
	case expenseStateList:
		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case expenseStateAddForm, expenseStateRevertForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m ExpensesModel) categoryOptions() []huh.Option[string] {
	categories := m.store.Categories()

	opts := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	return opts
}

func (m *ExpensesModel) refreshItems() {
	expenses := m.store.Expenses()

	items := make([]list.Item, len(expenses))
	for i, e := range expenses {
		items[i] = expenseItem{e: e}
	}

	m.list.SetItems(items)
}

// Messages

type expenseResultMsg struct {
	err error
}

func (m ExpensesModel) addExpenseCmd() tea.Cmd {
	date, _ := parseDate(m.formDate)
	amount, _ := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)

	params := ledger.ExpenseParams{
		BookingID:  strings.TrimSpace(m.formBookingID),
		Date:       date,
		Category:   m.formCategory,
		Vendor:     strings.TrimSpace(m.formVendor),
		Amount:     amount,
		Method:     ledger.Method(m.formMethod),
		Note:       m.formNote,
		RecordedBy: "tui",
	}
	store := m.store

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := store.AddExpense(ctx, params)

		return expenseResultMsg{err: err}
	}
}

func (m ExpensesModel) revertExpenseCmd() tea.Cmd {
	selected, ok := m.list.SelectedItem().(expenseItem)
	if !ok {
		return nil
	}

	expenseID := selected.e.ID
	reason := m.formReason
	store := m.store

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := store.RevertExpense(ctx, expenseID, ledger.RevertParams{
			Reason:     reason,
			RecordedBy: "tui",
		})

		return expenseResultMsg{err: err}
	}
}
