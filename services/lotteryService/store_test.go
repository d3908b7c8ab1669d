package lotteryService

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})

	return gormDB, mock, err
}

func TestLoadGuildConfigStoreFailure(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `guild_configs`").
		WillReturnError(errors.New("connection refused"))

	_, err = loadGuildConfig(db, "guild1")

	var unavailable *StoreUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Expected StoreUnavailableError, got %v", err)
	}
	assertEqual(t, "load guild config", unavailable.Op, "operation label")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestLoadLedgerExisting(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	rows := sqlmock.NewRows([]string{"id", "discord_id", "guild_id", "tickets", "total_draws", "daily_claims", "last_claim_date"}).
		AddRow(1, "user1", "guild1", 4, 2, 1, "2026-08-30")
	mock.ExpectQuery("SELECT \\* FROM `user_ledgers`").
		WillReturnRows(rows)

	ledger, err := loadLedger(db, "guild1", "user1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	assertEqual(t, 4, ledger.Tickets, "tickets")
	assertEqual(t, 2, ledger.TotalDraws, "total draws")
	assertEqual(t, "2026-08-30", ledger.LastClaimDate, "last claim date")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
