package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"zombieland/internal/calendar"
	"zombieland/internal/pricing"
)

type appState int

const (
	stateLoading appState = iota
	stateReady
	stateSubmitting
	stateError
)

const requestTimeout = 10 * time.Second

type appModel struct {
	client *Client

	state appState
	err   error

	periods []pricing.Period

	today     calendar.Date
	month     calendar.Month
	cursor    calendar.Date
	selection calendar.Selection
	tickets   int
	quote     pricing.Quote
	notice    string

	spinner spinner.Model
	printer *message.Printer
}

type periodsMsg struct {
	periods []pricing.Period
	err     error
}

type reservedMsg struct {
	reservation *Reservation
	err         error
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// season colours by period name; other periods get the default
var seasonColors = map[string]lipgloss.Color{
	"Basse saison":   lipgloss.Color("2"),
	"Moyenne saison": lipgloss.Color("3"),
	"Haute saison":   lipgloss.Color("1"),
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	paddingStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	gapStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	hintStyle      = lipgloss.NewStyle().Faint(true)
	defaultSeason  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dayCellWidth   = 4
	weekdayHeaders = []string{"L", "M", "M", "J", "V", "S", "D"}
)

// New builds the booking calendar opened on the month of today
func New(client *Client, today calendar.Date) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	return appModel{
		client:  client,
		state:   stateLoading,
		today:   today,
		month:   calendar.MonthOf(today),
		cursor:  today,
		tickets: 1,
		spinner: sp,
		printer: message.NewPrinter(language.French),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchPeriodsCmd(), m.spinner.Tick)
}

func (m appModel) fetchPeriodsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := client.Periods(ctx)
		return periodsMsg{periods: list, err: err}
	}
}

func (m appModel) reserveCmd() tea.Cmd {
	client, sel, tickets := m.client, m.selection, m.tickets
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		r, err := client.Reserve(ctx, sel, tickets)
		return reservedMsg{reservation: r, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != stateLoading && m.state != stateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case periodsMsg:
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		m.state = stateReady
		m.err = nil
		m.periods = msg.periods
		m.requote()
		return m, nil

	case reservedMsg:
		m.state = stateReady
		if msg.err != nil {
			m.notice = errorStyle.Render("Réservation impossible : " + msg.err.Error())
			return m, nil
		}
		m.notice = fmt.Sprintf("Réservation %s confirmée, total %s",
			msg.reservation.BookingRef, m.euros(msg.reservation.TotalPrice))
		m.selection = calendar.Selection{}
		m.requote()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	switch m.state {
	case stateError:
		if key == "r" {
			m.state = stateLoading
			m.err = nil
			return m, tea.Batch(m.fetchPeriodsCmd(), m.spinner.Tick)
		}
		return m, nil
	case stateReady:
	default:
		return m, nil
	}

	switch key {
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case "[":
		m.month = m.month.Prev()
		m.cursor = m.month.First()
	case "]":
		m.month = m.month.Next()
		m.cursor = m.month.First()
	case "enter", " ":
		m.selection = m.selection.Click(m.cursor)
		m.notice = ""
		m.requote()
	case "esc":
		m.selection = calendar.Selection{}
		m.requote()
	case "+", "=":
		m.tickets++
		m.requote()
	case "-":
		if m.tickets > 1 {
			m.tickets--
		}
		m.requote()
	case "s":
		return m.submit()
	}
	return m, nil
}

func (m appModel) submit() (tea.Model, tea.Cmd) {
	switch {
	case !m.client.HasToken():
		m.notice = errorStyle.Render(ErrNoToken.Error())
		return m, nil
	case m.selection.State() == calendar.StateEmpty:
		m.notice = errorStyle.Render("Sélectionnez au moins un jour")
		return m, nil
	}
	m.state = stateSubmitting
	m.notice = ""
	return m, tea.Batch(m.reserveCmd(), m.spinner.Tick)
}

// moveCursor keeps the cursor inside the visible grid
func (m *appModel) moveCursor(days int) {
	next := m.cursor.AddDays(days)
	grid := m.month.Grid()
	if next.Before(grid[0]) || next.After(m.month.Last()) {
		return
	}
	m.cursor = next
}

func (m *appModel) requote() {
	m.quote = pricing.Calculate(m.selection, m.tickets, m.periods)
}

func (m appModel) euros(amount float64) string {
	return m.printer.Sprintf("%.2f €", amount)
}

func (m appModel) View() string {
	header := titleStyle.Render("ZombieLand · Réservation")

	switch m.state {
	case stateLoading:
		return header + "\n\n" + m.spinner.View() + " Chargement des périodes..."
	case stateError:
		return header + "\n\n" + errorStyle.Render(describeError(m.err)) + "\n\n" +
			hintStyle.Render("r pour réessayer, q pour quitter")
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(panelStyle.Render(m.renderMonth()) + "\n\n")
	b.WriteString(m.renderQuote() + "\n")
	if m.state == stateSubmitting {
		b.WriteString("\n" + m.spinner.View() + " Réservation en cours...\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("flèches: déplacer · entrée: choisir · [ ]: mois · + -: billets · s: réserver · q: quitter"))
	return b.String()
}

func (m appModel) renderMonth() string {
	var b strings.Builder
	title := fmt.Sprintf("%s %d", frenchMonths[m.month.Month()-1], m.month.Year())
	b.WriteString(headerStyle.Render(title) + "\n")

	for _, h := range weekdayHeaders {
		b.WriteString(fmt.Sprintf("%*s", dayCellWidth, h))
	}
	b.WriteString("\n")

	for i, day := range m.month.Grid() {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderDay(day))
	}
	return b.String()
}

func (m appModel) renderDay(day calendar.Date) string {
	cell := fmt.Sprintf("%*d", dayCellWidth, day.Day())

	style := gapStyle
	if p, ok := pricing.PeriodFor(day, m.periods); ok {
		style = defaultSeason
		if c, ok := seasonColors[p.Name]; ok {
			style = lipgloss.NewStyle().Foreground(c)
		}
	}
	if !m.month.Contains(day) {
		style = paddingStyle
	}
	if m.selection.Contains(day) {
		style = selectedStyle
	}
	if day.Equal(m.cursor) {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(cell)
}

func (m appModel) renderQuote() string {
	if m.selection.State() == calendar.StateEmpty {
		return fmt.Sprintf("Billets : %d · aucune date sélectionnée", m.tickets)
	}

	start, end, _ := m.selection.Bounds()
	window := start.String()
	if !end.Equal(start) {
		window += " → " + end.String()
	}

	lines := []string{
		"Séjour : " + window,
		fmt.Sprintf("Billets : %d · prix par billet %s", m.tickets, m.euros(m.quote.PerTicket)),
		headerStyle.Render("Total : " + m.euros(m.quote.Total)),
	}
	if m.quote.HasGaps() {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("%d jour(s) hors période tarifaire", len(m.quote.Gaps))))
	}
	return strings.Join(lines, "\n")
}

func describeError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Le serveur a répondu %d : %s", apiErr.StatusCode, apiErr.Message)
	}
	if err == nil {
		return "erreur inconnue"
	}
	return "Impossible de joindre le serveur : " + err.Error()
}
