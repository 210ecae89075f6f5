package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/heritage/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/heritage/internal/cache"
	"github.com/MrJamesThe3rd/heritage/internal/config"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type model struct {
	store *ledger.Store

	currentView View

	bookingsView view.BookingsModel
	expensesView view.ExpensesModel
	dayBookView  view.DayBookModel
}

type View int

const (
	ViewMenu     View = 0
	ViewBookings View = 1
	ViewExpenses View = 2
	ViewDayBook  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := ledger.Options{}

	if cfg.Redis.Addr != "" {
		snapshots, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}

		opts.Snapshots = snapshots
	}

	state := ledger.LoadState(context.Background(), opts.Snapshots)
	store := ledger.NewStore(state, opts)

	return model{
		store:        store,
		currentView:  ViewMenu,
		bookingsView: view.NewBookingsModel(store),
		expensesView: view.NewExpensesModel(store),
		dayBookView:  view.NewDayBookModel(store),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewBookings
				m.bookingsView = view.NewBookingsModel(m.store)

				return m, m.bookingsView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.store)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewDayBook
				m.dayBookView = view.NewDayBookModel(m.store)

				return m, m.dayBookView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewBookings:
		var newModel tea.Model
		newModel, cmd = m.bookingsView.Update(msg)
		m.bookingsView = newModel.(view.BookingsModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewDayBook:
		var newModel tea.Model
		newModel, cmd = m.dayBookView.Update(msg)
		m.dayBookView = newModel.(view.DayBookModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Heritage Gardens\n\n" +
				"1. Manage Bookings\n" +
				"2. Manage Expenses\n" +
				"3. Day Book\n\n" +
				"q. Quit",
		)
	case ViewBookings:
		return m.bookingsView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewDayBook:
		return m.dayBookView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
