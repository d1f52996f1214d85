package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSelectionClickTransitions(t *testing.T) {
	a := MustParseDate("2024-11-09")
	b := MustParseDate("2024-11-12")
	before := MustParseDate("2024-11-05")
	other := MustParseDate("2024-11-15")

	tests := []struct {
		name      string
		start     Selection
		click     Date
		want      Selection
		wantState State
	}{
		{"empty sets start", Selection{}, a, Selection{Start: a}, StatePartial},
		{"partial later day completes", Selection{Start: a}, b, Selection{Start: a, End: b}, StateComplete},
		{"partial earlier day restarts", Selection{Start: a}, before, Selection{Start: before}, StatePartial},
		{"partial same day stays partial", Selection{Start: a}, a, Selection{Start: a}, StatePartial},
		{"complete click start clears", Selection{Start: a, End: b}, a, Selection{}, StateEmpty},
		{"complete click end clears", Selection{Start: a, End: b}, b, Selection{}, StateEmpty},
		{"complete click inside restarts", Selection{Start: a, End: b}, a.AddDays(1), Selection{Start: a.AddDays(1)}, StatePartial},
		{"complete click outside restarts", Selection{Start: a, End: b}, other, Selection{Start: other}, StatePartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Click(tt.click)
			if !got.Start.Equal(tt.want.Start) || !got.End.Equal(tt.want.End) {
				t.Fatalf("Click(%s) = [%s, %s], want [%s, %s]", tt.click, got.Start, got.End, tt.want.Start, tt.want.End)
			}
			if got.State() != tt.wantState {
				t.Fatalf("state = %s, want %s", got.State(), tt.wantState)
			}
		})
	}
}

func TestSelectionClickSequenceReturnsToEmpty(t *testing.T) {
	a := MustParseDate("2024-11-01")
	b := MustParseDate("2024-11-03")

	var sel Selection
	sel = sel.Click(a)
	if sel.State() != StatePartial {
		t.Fatalf("after first click state = %s", sel.State())
	}
	sel = sel.Click(b)
	if sel.State() != StateComplete {
		t.Fatalf("after second click state = %s", sel.State())
	}
	sel = sel.Click(a)
	if sel.State() != StateEmpty {
		t.Fatalf("after third click state = %s", sel.State())
	}
}

func TestSelectionBoundsAndDays(t *testing.T) {
	a := MustParseDate("2024-11-09")

	if _, _, ok := (Selection{}).Bounds(); ok {
		t.Fatal("empty selection should have no bounds")
	}

	start, end, ok := Selection{Start: a}.Bounds()
	if !ok || !start.Equal(a) || !end.Equal(a) {
		t.Fatalf("partial bounds = %s..%s ok=%v", start, end, ok)
	}

	days := Selection{Start: a, End: a.AddDays(3)}.Days()
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	if !days[3].Equal(MustParseDate("2024-11-12")) {
		t.Fatalf("last day = %s", days[3])
	}
}

func TestSelectionContains(t *testing.T) {
	sel := Selection{Start: MustParseDate("2024-11-09"), End: MustParseDate("2024-11-12")}
	if !sel.Contains(MustParseDate("2024-11-10")) {
		t.Fatal("expected inner day to be contained")
	}
	if !sel.Contains(MustParseDate("2024-11-12")) {
		t.Fatal("expected end day to be contained")
	}
	if sel.Contains(MustParseDate("2024-11-13")) {
		t.Fatal("did not expect day after end to be contained")
	}
}

func TestNewSelectionRejectsInvertedRange(t *testing.T) {
	if _, err := NewSelection(MustParseDate("2024-11-10"), MustParseDate("2024-11-09")); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := NewSelection(Date{}, MustParseDate("2024-11-09")); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for end without start, got %v", err)
	}
	sel, err := NewSelection(MustParseDate("2024-11-09"), Date{})
	if err != nil || sel.State() != StatePartial {
		t.Fatalf("single day selection: %v %s", err, sel.State())
	}
}

func TestMonthGridStartsOnMonday(t *testing.T) {
	// November 2024 starts on a Friday: four padding days from October
	grid := NewMonth(2024, time.November).Grid()
	if len(grid) != 34 {
		t.Fatalf("expected 34 cells, got %d", len(grid))
	}
	if grid[0].Weekday() != time.Monday {
		t.Fatalf("grid starts on %s", grid[0].Weekday())
	}
	if !grid[0].Equal(MustParseDate("2024-10-28")) {
		t.Fatalf("first cell = %s", grid[0])
	}
	if !grid[len(grid)-1].Equal(MustParseDate("2024-11-30")) {
		t.Fatalf("last cell = %s", grid[len(grid)-1])
	}
}

func TestMonthGridNoPaddingWhenMonthStartsOnMonday(t *testing.T) {
	// July 2024 starts on a Monday
	grid := NewMonth(2024, time.July).Grid()
	if len(grid) != 31 || !grid[0].Equal(MustParseDate("2024-07-01")) {
		t.Fatalf("unexpected grid start %s (len %d)", grid[0], len(grid))
	}
}

func TestMonthNavigationWrapsYears(t *testing.T) {
	m := NewMonth(2024, time.December)
	if next := m.Next(); next.Year() != 2025 || next.Month() != time.January {
		t.Fatalf("next = %s", next)
	}
	if prev := NewMonth(2024, time.January).Prev(); prev.Year() != 2023 || prev.Month() != time.December {
		t.Fatalf("prev = %s", prev)
	}
	if !m.Contains(MustParseDate("2024-12-31")) || m.Contains(MustParseDate("2025-01-01")) {
		t.Fatal("Contains mismatch")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	type payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	var p payload
	if err := json.Unmarshal([]byte(`{"start":"2024-11-09","end":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Start.String() != "2024-11-09" || !p.End.IsZero() {
		t.Fatalf("decoded %+v", p)
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"start":"2024-11-09","end":null}` {
		t.Fatalf("encoded %s", out)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 11, 9, 0, 0, 0, 0, time.UTC)); err != nil || d.String() != "2024-11-09" {
		t.Fatalf("scan time: %v %s", err, d)
	}
	if err := d.Scan([]byte("2024-12-01")); err != nil || d.String() != "2024-12-01" {
		t.Fatalf("scan bytes: %v %s", err, d)
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected error for int")
	}
}

func TestDaysAcrossMonthBoundary(t *testing.T) {
	days := Days(MustParseDate("2024-10-30"), MustParseDate("2024-11-02"))
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	if Days(MustParseDate("2024-11-02"), MustParseDate("2024-11-01")) != nil {
		t.Fatal("expected nil for inverted range")
	}
}
