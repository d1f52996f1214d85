package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrateConstraints(t *testing.T) {
	db, mock, err := NewMock()
	if err != nil {
		t.Fatal(err)
	}

	for _, stmt := range constraintStatements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := MigrateConstraints(db); err != nil {
		t.Fatalf("MigrateConstraints: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMigrateStopsOnExtensionFailure(t *testing.T) {
	db, mock, err := NewMock()
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectExec(`CREATE EXTENSION`).WillReturnError(sqlmock.ErrCancelled)

	if err := Migrate(db); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
