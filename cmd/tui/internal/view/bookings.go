package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type bookingState int

const (
	bookingStateList bookingState = iota
	bookingStateDetail
	bookingStatePayForm
	bookingStateRevertForm
)

// bookingItem wraps a booking to implement list.Item.
type bookingItem struct {
	b *ledger.Booking
}

func (i bookingItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.b.Status))

	return fmt.Sprintf("%s  %s  %s  %s", i.b.ID, FormatDate(i.b.EventDate), status, i.b.Client)
}

func (i bookingItem) Description() string {
	return fmt.Sprintf("Received: %s  Expenses: %s",
		FormatAmount(i.b.Received()), FormatAmount(i.b.Expenses))
}

func (i bookingItem) FilterValue() string {
	return i.b.ID + " " + i.b.Client
}

type paymentItem struct {
	p ledger.Payment
}

func (i paymentItem) Title() string {
	return fmt.Sprintf("%s  %s  %s  %s",
		FormatDate(i.p.Date), FormatAmount(i.p.Amount), i.p.Type, i.p.Method)
}

func (i paymentItem) Description() string {
	return i.p.Note
}

func (i paymentItem) FilterValue() string {
	return i.p.Note
}

type BookingsModel struct {
	CommonModel
	store *ledger.Store

	state       bookingState
	bookingList list.Model
	paymentList list.Model
	form        *huh.Form
	selectedID  string
	status      string

	// Form field bindings
	formDate   string
	formAmount string
	formMethod string
	formNote   string
	formReason string
}

func NewBookingsModel(store *ledger.Store) BookingsModel {
	bl := list.New([]list.Item{}, bookingItemDelegate{}, 0, 0)
	bl.Title = "Bookings"
	bl.SetShowStatusBar(true)
	bl.SetFilteringEnabled(true)
	bl.SetShowHelp(true)

	pl := list.New([]list.Item{}, bookingItemDelegate{}, 0, 0)
	pl.SetShowStatusBar(false)
	pl.SetFilteringEnabled(false)
	pl.SetShowHelp(true)

	m := BookingsModel{
		store:       store,
		bookingList: bl,
		paymentList: pl,
	}
	m.refreshBookings()

	return m
}

func (m BookingsModel) Title() string { return "Manage Bookings" }

func (m BookingsModel) ShortHelp() string {
	switch m.state {
	case bookingStateList:
		return "Esc: back | Enter: payments | /: filter"
	case bookingStateDetail:
		return "Esc: back | a: add payment | r: revert selected"
	case bookingStatePayForm, bookingStateRevertForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m BookingsModel) Init() tea.Cmd {
	return nil
}

func (m BookingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bookingList.SetSize(msg.Width-4, msg.Height-8)
		m.paymentList.SetSize(msg.Width-4, msg.Height-10)

		return m, nil

	case paymentResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved."
		}

		m.state = bookingStateDetail
		m.form = nil
		m.refreshBookings()
		m.refreshPayments()

		return m, nil
	}

	switch m.state {
	case bookingStateList:
		return m.updateList(msg)
	case bookingStateDetail:
		return m.updateDetail(msg)
	case bookingStatePayForm, bookingStateRevertForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m BookingsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			if m.bookingList.FilterState() == list.Filtering {
				break // let the list handle it (close filter)
			}

			return m, Back
		case tea.KeyEnter:
			if m.bookingList.FilterState() == list.Filtering {
				break // let the list handle it (confirm filter)
			}

			selected, ok := m.bookingList.SelectedItem().(bookingItem)
			if !ok {
				return m, nil
			}

			m.selectedID = selected.b.ID
			m.state = bookingStateDetail
			m.status = ""
			m.refreshPayments()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.bookingList, cmd = m.bookingList.Update(msg)

	return m, cmd
}

func (m BookingsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = bookingStateList
			return m, nil
		case "a":
			return m.startPayForm()
		case "r":
			return m.startRevertForm()
		}
	}

	var cmd tea.Cmd
	m.paymentList, cmd = m.paymentList.Update(msg)

	return m, cmd
}

func (m BookingsModel) startPayForm() (tea.Model, tea.Cmd) {
	m.formDate = FormatDate(timeNow())
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
				Key("note").
				Title("Note (optional)").
				Value(&m.formNote),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = bookingStatePayForm

	return m, m.form.Init()
}

func (m BookingsModel) startRevertForm() (tea.Model, tea.Cmd) {
	selected, ok := m.paymentList.SelectedItem().(paymentItem)
	if !ok {
		return m, nil
	}

	if selected.p.Type == ledger.PaymentReverted {
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

	m.state = bookingStateRevertForm

	return m, m.form.Init()
}

func (m BookingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = bookingStateDetail
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

	if m.state == bookingStatePayForm {
		return m, m.addPaymentCmd()
	}

	return m, m.revertPaymentCmd()
}

func (m BookingsModel) View() string {
	switch m.state {
	case bookingStateList:
		return lipgloss.NewStyle().Padding(1).Render(m.bookingList.View())

	case bookingStateDetail:
		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.bookingInfoView() + "\n" + statusLine + m.paymentList.View(),
		)

	case bookingStatePayForm, bookingStateRevertForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.bookingInfoView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m BookingsModel) bookingInfoView() string {
	b, err := m.store.Booking(m.selectedID)
	if err != nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"%s  |  %s  |  Event: %s\nReceived: %s  |  Expenses: %s",
			b.ID, b.Client, FormatDate(b.EventDate),
			FormatAmount(b.Received()), FormatAmount(b.Expenses),
		))
}

func (m *BookingsModel) refreshBookings() {
	bookings := m.store.Bookings()

	items := make([]list.Item, len(bookings))
	for i, b := range bookings {
		items[i] = bookingItem{b: b}
	}

	m.bookingList.SetItems(items)
}

func (m *BookingsModel) refreshPayments() {
	b, err := m.store.Booking(m.selectedID)
	if err != nil {
		m.paymentList.SetItems(nil)
		return
	}

	m.paymentList.Title = fmt.Sprintf("Payments — %s", b.Client)

	items := make([]list.Item, len(b.Payments))
	for i, p := range b.Payments {
		items[i] = paymentItem{p: p}
	}

	m.paymentList.SetItems(items)
}

// Messages

type paymentResultMsg struct {
	err error
}

func (m BookingsModel) addPaymentCmd() tea.Cmd {
	bookingID := m.selectedID
	date, _ := parseDate(m.formDate)
	amount, _ := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	method := ledger.Method(m.formMethod)
	note := m.formNote
	store := m.store

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := store.AddPayment(ctx, bookingID, ledger.PaymentParams{
			Date:       date,
			Amount:     amount,
			Method:     method,
			Note:       note,
			RecordedBy: "tui",
		})

		return paymentResultMsg{err: err}
	}
}

func (m BookingsModel) revertPaymentCmd() tea.Cmd {
	selected, ok := m.paymentList.SelectedItem().(paymentItem)
	if !ok {
		return nil
	}

	bookingID := m.selectedID
	paymentID := selected.p.ID
	reason := m.formReason
	store := m.store

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := store.RevertPayment(ctx, bookingID, paymentID, ledger.RevertParams{
			Reason:     reason,
			RecordedBy: "tui",
		})

		return paymentResultMsg{err: err}
	}
}

// bookingItemDelegate renders items in the booking and payment lists.
type bookingItemDelegate struct{}

func (d bookingItemDelegate) Height() int                             { return 2 }
func (d bookingItemDelegate) Spacing() int                            { return 0 }
func (d bookingItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d bookingItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	type row interface {
		Title() string
		Description() string
	}

	i, ok := item.(row)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	title := i.Title()
	desc := i.Description()

	titleStyle := lipgloss.NewStyle()
	descStyle := lipgloss.NewStyle().Faint(true)

	if isSelected {
		titleStyle = titleStyle.Foreground(lipgloss.Color("170")).Bold(true)
		descStyle = descStyle.Foreground(lipgloss.Color("170"))
	}

	fmt.Fprintf(w, "%s\n  %s", titleStyle.Render(title), descStyle.Render(desc))
}
