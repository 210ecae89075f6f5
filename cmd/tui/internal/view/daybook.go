package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

// txItem wraps a day-book row to implement list.Item.
type txItem struct {
	tx ledger.Transaction
}

func (i txItem) Title() string {
	direction := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Direction))

	amount := FormatAmount(i.tx.Amount)
	if i.tx.Direction == ledger.DirectionExpense {
		amount = "-" + amount
	}

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.tx.Date), amount, direction, i.tx.Description)
}

func (i txItem) Description() string {
	if i.tx.BookingID != "" {
		return fmt.Sprintf("Booking: %s  Method: %s", i.tx.BookingID, i.tx.Method)
	}

	return fmt.Sprintf("Method: %s", i.tx.Method)
}

func (i txItem) FilterValue() string {
	return i.tx.Description + " " + i.tx.BookingID
}

// DayBookModel shows every payment and expense entry merged into one
// chronological view with running totals.
type DayBookModel struct {
	CommonModel
	store *ledger.Store

	list     list.Model
	totalIn  int64
	totalOut int64
}

func NewDayBookModel(store *ledger.Store) DayBookModel {
	l := list.New([]list.Item{}, bookingItemDelegate{}, 0, 0)
	l.Title = "Day Book"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	m := DayBookModel{
		store: store,
		list:  l,
	}
	m.refreshItems()

	return m
}

func (m DayBookModel) Title() string { return "Day Book" }

func (m DayBookModel) ShortHelp() string {
	return "Esc: back | /: filter"
}

func (m DayBookModel) Init() tea.Cmd {
	return nil
}

func (m DayBookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.list.FilterState() != list.Filtering {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m DayBookModel) View() string {
	totals := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Income: %s  |  Expense: %s  |  Net: %s",
			FormatAmount(m.totalIn), FormatAmount(m.totalOut), FormatAmount(m.totalIn-m.totalOut),
		))

	return lipgloss.NewStyle().Padding(1).Render(totals + "\n" + m.list.View())
}

func (m *DayBookModel) refreshItems() {
	txs := m.store.Transactions()

	m.totalIn = 0
	m.totalOut = 0

	items := make([]list.Item, len(txs))
	for i, tx := range txs {
		items[i] = txItem{tx: tx}

		if tx.Direction == ledger.DirectionIncome {
			m.totalIn += tx.Amount
		} else {
			m.totalOut += tx.Amount
		}
	}

	m.list.SetItems(items)
}
