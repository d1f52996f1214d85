package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/pricing"
)

func d(s string) calendar.Date { return calendar.MustParseDate(s) }

func novemberPeriods() []pricing.Period {
	return []pricing.Period{
		{ID: uuid.New(), Name: "Basse saison", Start: d("2024-11-01"), End: d("2024-11-10"), PricePerTicket: 10},
		{ID: uuid.New(), Name: "Haute saison", Start: d("2024-11-11"), End: d("2024-11-20"), PricePerTicket: 25},
	}
}

func readyModel(t *testing.T, token string) appModel {
	t.Helper()
	m := New(NewClient("http://localhost:0", token, nil), d("2024-11-05"))
	next, _ := m.Update(periodsMsg{periods: novemberPeriods()})
	am := next.(appModel)
	if am.state != stateReady {
		t.Fatalf("state = %v, want ready", am.state)
	}
	return am
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m appModel, keys ...string) (appModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(appModel)
	}
	return m, cmd
}

func TestSelectRangeAndQuote(t *testing.T) {
	m := readyModel(t, "")

	m, _ = press(m, "enter")
	if m.selection.State() != calendar.StatePartial || !m.selection.Start.Equal(d("2024-11-05")) {
		t.Fatalf("selection = %+v", m.selection)
	}
	if m.quote.Total != 10 {
		t.Errorf("partial total = %v, want 10", m.quote.Total)
	}

	m, _ = press(m, "right", "right", "enter")
	if m.selection.State() != calendar.StateComplete || !m.selection.End.Equal(d("2024-11-07")) {
		t.Fatalf("selection = %+v", m.selection)
	}
	if m.quote.Total != 30 {
		t.Errorf("total = %v, want 30", m.quote.Total)
	}

	m, _ = press(m, "+")
	if m.tickets != 2 || m.quote.Total != 60 {
		t.Errorf("tickets = %d total = %v", m.tickets, m.quote.Total)
	}

	m, _ = press(m, "-", "-", "-")
	if m.tickets != 1 || m.quote.Total != 30 {
		t.Errorf("tickets should clamp at 1: tickets = %d total = %v", m.tickets, m.quote.Total)
	}

	if view := m.View(); !strings.Contains(view, "30,00") || !strings.Contains(view, "novembre 2024") {
		t.Errorf("view missing total or month:\n%s", view)
	}
}

func TestRangeAcrossSeasons(t *testing.T) {
	m := readyModel(t, "")
	// 05 -> 12 crosses into the high season on the 11th
	m, _ = press(m, "enter", "down", "enter")
	if m.quote.PerTicket != 6*10+2*25 {
		t.Errorf("per ticket = %v, want 110", m.quote.PerTicket)
	}
}

func TestClickBoundResets(t *testing.T) {
	m := readyModel(t, "")
	m, _ = press(m, "enter", "right", "enter", "enter")
	if m.selection.State() != calendar.StateEmpty {
		t.Errorf("clicking the end bound should clear, got %+v", m.selection)
	}
	if m.quote.Total != 0 {
		t.Errorf("total = %v", m.quote.Total)
	}
}

func TestGapDaysReported(t *testing.T) {
	m := readyModel(t, "")
	m, _ = press(m, "]", "enter")
	if !m.quote.HasGaps() {
		t.Fatal("December is not priced, expected a gap")
	}
	if !strings.Contains(m.View(), "hors période") {
		t.Error("view should warn about unpriced days")
	}
}

func TestCursorStaysInGrid(t *testing.T) {
	m := readyModel(t, "")

	// the grid of November 2024 starts on Monday 28 October
	m, _ = press(m, "up", "up")
	if !m.cursor.Equal(d("2024-10-29")) {
		t.Errorf("cursor = %s, want 2024-10-29", m.cursor)
	}

	m, _ = press(m, "]")
	if !m.cursor.Equal(d("2024-12-01")) || m.month.Month() != 12 {
		t.Errorf("cursor = %s month = %s", m.cursor, m.month)
	}
	m, _ = press(m, "[", "[")
	if m.month.Month() != 10 {
		t.Errorf("month = %s", m.month)
	}

	m, _ = press(m, "]")
	for i := 0; i < 10; i++ {
		m, _ = press(m, "down")
	}
	if m.cursor.After(d("2024-11-30")) {
		t.Errorf("cursor left the month: %s", m.cursor)
	}
}

func TestMonthNavigationKeepsSelection(t *testing.T) {
	m := readyModel(t, "")

	m, _ = press(m, "enter")
	partial, total := m.selection, m.quote.Total
	m, _ = press(m, "]", "[", "]", "[")
	if m.selection.State() != calendar.StatePartial || !m.selection.Start.Equal(partial.Start) {
		t.Errorf("partial selection changed: %+v", m.selection)
	}
	if m.quote.Total != total {
		t.Errorf("partial total = %v, want %v", m.quote.Total, total)
	}

	m, _ = press(m, "right", "right", "right", "right", "right", "right", "enter")
	if m.selection.State() != calendar.StateComplete {
		t.Fatalf("selection = %+v", m.selection)
	}
	complete, total := m.selection, m.quote.Total
	m, _ = press(m, "]", "]", "[")
	if m.selection.State() != calendar.StateComplete ||
		!m.selection.Start.Equal(complete.Start) || !m.selection.End.Equal(complete.End) {
		t.Errorf("complete selection changed: %+v", m.selection)
	}
	if m.quote.Total != total {
		t.Errorf("complete total = %v, want %v", m.quote.Total, total)
	}

	// a range may end in a later month
	m, _ = press(m, "esc", "[", "enter", "]", "enter")
	if m.selection.State() != calendar.StateComplete || !m.selection.End.Equal(d("2024-12-01")) {
		t.Errorf("cross-month selection = %+v", m.selection)
	}
}

func TestLoadError(t *testing.T) {
	m := New(NewClient("http://localhost:0", "", nil), d("2024-11-05"))
	next, _ := m.Update(periodsMsg{err: errors.New("connection refused")})
	am := next.(appModel)
	if am.state != stateError {
		t.Fatalf("state = %v", am.state)
	}
	if !strings.Contains(am.View(), "connection refused") {
		t.Errorf("view = %s", am.View())
	}

	am, cmd := press(am, "r")
	if am.state != stateLoading || cmd == nil {
		t.Error("r should retry loading")
	}
}

func TestSubmitRequiresToken(t *testing.T) {
	m := readyModel(t, "")
	m, cmd := press(m, "enter", "s")
	if m.state != stateReady || cmd != nil {
		t.Error("submit without token should not send")
	}
	if !strings.Contains(m.notice, ErrNoToken.Error()) {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSubmitAndConfirm(t *testing.T) {
	m := readyModel(t, "token")

	m, cmd := press(m, "s")
	if cmd != nil || m.state != stateReady {
		t.Fatal("empty selection should not submit")
	}

	m, cmd = press(m, "enter", "s")
	if m.state != stateSubmitting || cmd == nil {
		t.Fatal("expected a reservation command")
	}

	next, _ := m.Update(reservedMsg{reservation: &Reservation{BookingRef: "ZL-0A1B2C3D", TotalPrice: 10}})
	m = next.(appModel)
	if m.state != stateReady || m.selection.State() != calendar.StateEmpty {
		t.Errorf("state = %v selection = %+v", m.state, m.selection)
	}
	if !strings.Contains(m.notice, "ZL-0A1B2C3D") {
		t.Errorf("notice = %q", m.notice)
	}

	next, _ = m.Update(reservedMsg{err: &APIError{StatusCode: 422, Message: "unpriced days"}})
	m = next.(appModel)
	if !strings.Contains(m.notice, "unpriced days") {
		t.Errorf("notice = %q", m.notice)
	}
}
