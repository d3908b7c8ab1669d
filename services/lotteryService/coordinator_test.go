package lotteryService

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lotteryBoardBot/models"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:coordtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get raw DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(&models.GuildConfig{}, &models.UserLedger{}, &models.ErrorLog{}, &models.Migration{})
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	return db
}

func newTestCoordinator(t *testing.T, db *gorm.DB) *Coordinator {
	t.Helper()
	return New(db, Options{
		DailyClaimLimit: 1,
		LockWait:        2 * time.Second,
		Rand:            rand.New(rand.NewSource(7)),
	})
}

func setupShuffledBoard(t *testing.T, coord *Coordinator, guildID string) {
	t.Helper()
	if _, err := coord.AddPrize(guildID, "First Prize", 3); err != nil {
		t.Fatalf("Failed to add prize: %v", err)
	}
	if err := coord.ShufflePrizes(guildID); err != nil {
		t.Fatalf("Failed to shuffle: %v", err)
	}
}

func TestDrawNumberExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	coord := newTestCoordinator(t, db)
	guildID := "guild1"

	setupShuffledBoard(t, coord, guildID)

	const contenders = 16
	for n := 0; n < contenders; n++ {
		userID := fmt.Sprintf("user%d", n)
		if _, err := coord.GrantTickets(guildID, userID, 1); err != nil {
			t.Fatalf("Failed to grant tickets to %s: %v", userID, err)
		}
	}

	var wg sync.WaitGroup
	var successes, alreadyDrawn, other int64

	for n := 0; n < contenders; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user%d", n)
			_, err := coord.DrawNumber(guildID, userID, userID, 7)
			if err == nil {
				atomic.AddInt64(&successes, 1)
				return
			}
			var taken *SlotAlreadyDrawnError
			if errors.As(err, &taken) {
				atomic.AddInt64(&alreadyDrawn, 1)
				return
			}
			atomic.AddInt64(&other, 1)
			t.Errorf("Unexpected error: %v", err)
		}(n)
	}
	wg.Wait()

	assertEqual(t, int64(1), successes, "successful draws")
	assertEqual(t, int64(contenders-1), alreadyDrawn, "already-drawn rejections")
	assertEqual(t, int64(0), other, "unexpected errors")

	config, err := coord.GuildConfig(guildID)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	assertEqual(t, 1, len(config.DrawnRegistry), "registry size")

	entry := config.DrawnRegistry[7]
	assertEqual(t, config.PrizeAssignment[6], entry.Prize, "registry prize matches assignment")

	// The winner spent their ticket; everyone else kept theirs.
	var spent int64
	db.Model(&models.UserLedger{}).Where("guild_id = ? AND tickets = 0", guildID).Count(&spent)
	assertEqual(t, int64(1), spent, "tickets consumed")
}

func TestClaimTicketsPersistsAcrossRestart(t *testing.T) {
	db := newTestDB(t)
	coord := newTestCoordinator(t, db)
	guildID := "guild1"

	amount, balance, err := coord.ClaimTickets(guildID, "user1", "User One")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if amount < 1 || amount > 5 {
		t.Errorf("Expected amount in [1,5], got %d", amount)
	}
	assertEqual(t, amount, balance, "balance after first claim")

	// A fresh coordinator over the same DB sees the claim.
	restarted := newTestCoordinator(t, db)

	ledger, remaining, err := restarted.LedgerInfo(guildID, "user1", "User One")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	assertEqual(t, balance, ledger.Tickets, "persisted balance")
	assertEqual(t, 0, remaining, "no claims left today")

	_, _, err = restarted.ClaimTickets(guildID, "user1", "User One")
	var limitReached *DailyLimitReachedError
	if !errors.As(err, &limitReached) {
		t.Fatalf("Expected DailyLimitReachedError, got %v", err)
	}
}

func TestShuffleLockedAfterDraw(t *testing.T) {
	db := newTestDB(t)
	coord := newTestCoordinator(t, db)
	guildID := "guild1"

	setupShuffledBoard(t, coord, guildID)

	if _, err := coord.GrantTickets(guildID, "user1", 1); err != nil {
		t.Fatalf("Failed to grant tickets: %v", err)
	}
	if _, err := coord.DrawNumber(guildID, "user1", "User One", 42); err != nil {
		t.Fatalf("Unexpected draw error: %v", err)
	}

	err := coord.ShufflePrizes(guildID)

	var locked *ShuffleLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("Expected ShuffleLockedError, got %v", err)
	}
	assertEqual(t, 1, locked.Drawn, "reported drawn count")
}

func TestAddPrizeInvalidatesShuffle(t *testing.T) {
	db := newTestDB(t)
	coord := newTestCoordinator(t, db)
	guildID := "guild1"

	setupShuffledBoard(t, coord, guildID)

	if _, err := coord.AddPrize(guildID, "Second Prize", 5); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	config, err := coord.GuildConfig(guildID)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	assertEqual(t, false, config.Shuffled, "shuffled flag cleared")
	assertEqual(t, 0, len(config.PrizeAssignment), "assignment cleared")

	// Drawing against the stale board must now be rejected.
	if _, err := coord.GrantTickets(guildID, "user1", 1); err != nil {
		t.Fatalf("Failed to grant tickets: %v", err)
	}
	_, err = coord.DrawNumber(guildID, "user1", "User One", 7)
	var notReady *BoardNotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("Expected BoardNotReadyError, got %v", err)
	}
}

func TestResetBoardClearsLedgers(t *testing.T) {
	db := newTestDB(t)
	coord := newTestCoordinator(t, db)
	guildID := "guild1"

	setupShuffledBoard(t, coord, guildID)

	if _, err := coord.GrantTickets(guildID, "user1", 3); err != nil {
		t.Fatalf("Failed to grant tickets: %v", err)
	}
	if _, err := coord.DrawNumber(guildID, "user1", "User One", 7); err != nil {
		t.Fatalf("Unexpected draw error: %v", err)
	}

	if err := coord.ResetBoard(guildID); err != nil {
		t.Fatalf("Unexpected reset error: %v", err)
	}

	config, err := coord.GuildConfig(guildID)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	assertEqual(t, false, config.Shuffled, "shuffled flag")
	assertEqual(t, 0, len(config.DrawnRegistry), "registry cleared")

	var ledgerCount int64
	db.Model(&models.UserLedger{}).Where("guild_id = ?", guildID).Count(&ledgerCount)
	assertEqual(t, int64(0), ledgerCount, "ledgers deleted")
}

func TestLockWaitIsBounded(t *testing.T) {
	db := newTestDB(t)
	coord := New(db, Options{
		LockWait: 50 * time.Millisecond,
		Rand:     rand.New(rand.NewSource(7)),
	})

	unlock, err := coord.lockGuild("guild1")
	if err != nil {
		t.Fatalf("Unexpected lock error: %v", err)
	}
	defer unlock()

	start := time.Now()
	_, _, err = coord.ClaimTickets("guild1", "user1", "User One")

	var unavailable *StoreUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Expected StoreUnavailableError, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Lock wait exceeded its bound: %v", elapsed)
	}

	// A different guild is unaffected by the held scope.
	if _, _, err := coord.ClaimTickets("guild2", "user1", "User One"); err != nil {
		t.Errorf("Unexpected error for independent guild: %v", err)
	}
}
