package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/shared/database"
)

func TestRepositoryCompleteFinished(t *testing.T) {
	db, mock, err := database.NewMock()
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	mock.ExpectExec(`UPDATE "reservations" SET .* WHERE status = \$\d+ AND date_end < \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewRepository(db).CompleteFinished(context.Background(), calendar.MustParseDate("2024-10-15"))
	if err != nil {
		t.Fatalf("CompleteFinished: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepositoryTotalsBetweenSkipsCancelled(t *testing.T) {
	db, mock, err := database.NewMock()
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	from := time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(number_tickets\), 0\) AS tickets, COALESCE\(SUM\(total_price\), 0\) AS revenue FROM "reservations" WHERE status <> \$1 AND .*created_at >= \$2 AND created_at < \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"tickets", "revenue"}).AddRow(5, 175.0))

	totals, err := NewRepository(db).TotalsBetween(context.Background(), from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("TotalsBetween: %v", err)
	}
	if totals.Tickets != 5 || totals.Revenue != 175 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := database.NewMock()
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	mock.ExpectQuery(`SELECT \* FROM "reservations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := NewRepository(db).GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
}

func TestRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, err := database.NewMock()
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	mock.ExpectExec(`UPDATE "reservations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).UpdateStatus(context.Background(), uuid.New(), StatusCancelled, nil)
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
}
