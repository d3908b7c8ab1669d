package lotteryService

import (
	"errors"
	"reflect"
	"testing"

	"lotteryBoardBot/models"
)

func shuffledConfig() *models.GuildConfig {
	assignment := make([]string, models.TotalSlots)
	for idx := range assignment {
		assignment[idx] = models.MissPrize
	}
	assignment[6] = "First Prize" // slot 7

	return &models.GuildConfig{
		GuildID:         "guild1",
		Shuffled:        true,
		PrizeAssignment: assignment,
		DrawnRegistry:   map[int]models.DrawnSlot{},
	}
}

func snapshot(config *models.GuildConfig, ledger *models.UserLedger) (models.UserLedger, map[int]models.DrawnSlot) {
	registry := make(map[int]models.DrawnSlot, len(config.DrawnRegistry))
	for slot, entry := range config.DrawnRegistry {
		registry[slot] = entry
	}
	return *ledger, registry
}

func assertUnchanged(t *testing.T, config *models.GuildConfig, ledger *models.UserLedger, beforeLedger models.UserLedger, beforeRegistry map[int]models.DrawnSlot) {
	t.Helper()
	if *ledger != beforeLedger {
		t.Errorf("Ledger mutated on failure: before %+v, after %+v", beforeLedger, *ledger)
	}
	if !reflect.DeepEqual(config.DrawnRegistry, beforeRegistry) {
		t.Errorf("Registry mutated on failure: before %v, after %v", beforeRegistry, config.DrawnRegistry)
	}
}

func TestDrawSlot(t *testing.T) {
	t.Run("Winning draw matches the assignment", func(t *testing.T) {
		config := shuffledConfig()
		ledger := &models.UserLedger{DiscordID: "user1", GuildID: "guild1", Tickets: 1}

		result, err := DrawSlot(config, ledger, 7, "user1", "User One")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		assertEqual(t, "First Prize", result.Prize, "prize")
		assertEqual(t, true, result.IsWin, "is win")
		assertEqual(t, 0, ledger.Tickets, "ticket consumed")
		assertEqual(t, 1, ledger.TotalDraws, "total draws")

		entry, drawn := config.DrawnRegistry[7]
		assertEqual(t, true, drawn, "registry entry exists")
		assertEqual(t, models.DrawnSlot{UserID: "user1", DisplayName: "User One", Prize: "First Prize"}, entry, "registry entry")
	})

	t.Run("Miss draw is not a win", func(t *testing.T) {
		config := shuffledConfig()
		ledger := &models.UserLedger{DiscordID: "user1", GuildID: "guild1", Tickets: 1}

		result, err := DrawSlot(config, ledger, 1, "user1", "User One")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		assertEqual(t, models.MissPrize, result.Prize, "prize")
		assertEqual(t, false, result.IsWin, "is win")
	})

	t.Run("Repeat draw of the same slot fails and mutates nothing", func(t *testing.T) {
		config := shuffledConfig()
		first := &models.UserLedger{DiscordID: "user1", GuildID: "guild1", Tickets: 1}
		second := &models.UserLedger{DiscordID: "user2", GuildID: "guild1", Tickets: 5}

		if _, err := DrawSlot(config, first, 7, "user1", "User One"); err != nil {
			t.Fatalf("Unexpected error on first draw: %v", err)
		}
		beforeLedger, beforeRegistry := snapshot(config, second)

		_, err := DrawSlot(config, second, 7, "user2", "User Two")

		var alreadyDrawn *SlotAlreadyDrawnError
		if !errors.As(err, &alreadyDrawn) {
			t.Fatalf("Expected SlotAlreadyDrawnError, got %v", err)
		}
		assertEqual(t, 7, alreadyDrawn.Slot, "slot")
		assertEqual(t, "user1", alreadyDrawn.DrawnBy, "original drawer")
		assertUnchanged(t, config, second, beforeLedger, beforeRegistry)
	})

	t.Run("No tickets fails and mutates nothing", func(t *testing.T) {
		config := shuffledConfig()
		ledger := &models.UserLedger{DiscordID: "user1", GuildID: "guild1"}
		beforeLedger, beforeRegistry := snapshot(config, ledger)

		_, err := DrawSlot(config, ledger, 7, "user1", "User One")

		var noTickets *NoTicketsError
		if !errors.As(err, &noTickets) {
			t.Fatalf("Expected NoTicketsError, got %v", err)
		}
		assertUnchanged(t, config, ledger, beforeLedger, beforeRegistry)
	})

	t.Run("Unshuffled board fails and mutates nothing", func(t *testing.T) {
		config := &models.GuildConfig{GuildID: "guild1", DrawnRegistry: map[int]models.DrawnSlot{}}
		ledger := &models.UserLedger{DiscordID: "user1", GuildID: "guild1", Tickets: 3}
		beforeLedger, beforeRegistry := snapshot(config, ledger)

		_, err := DrawSlot(config, ledger, 7, "user1", "User One")

		var notReady *BoardNotReadyError
		if !errors.As(err, &notReady) {
			t.Fatalf("Expected BoardNotReadyError, got %v", err)
		}
		assertUnchanged(t, config, ledger, beforeLedger, beforeRegistry)
	})

	t.Run("Out-of-range slots are rejected", func(t *testing.T) {
		config := shuffledConfig()
		ledger := &models.UserLedger{DiscordID: "user1", GuildID: "guild1", Tickets: 3}

		for _, slot := range []int{0, -1, 101} {
			_, err := DrawSlot(config, ledger, slot, "user1", "User One")
			var notReady *BoardNotReadyError
			if !errors.As(err, &notReady) {
				t.Errorf("Slot %d: expected BoardNotReadyError, got %v", slot, err)
			}
		}
		assertEqual(t, 3, ledger.Tickets, "tickets unchanged")
	})

	t.Run("Short assignment falls back to miss", func(t *testing.T) {
		config := shuffledConfig()
		config.PrizeAssignment = config.PrizeAssignment[:50]
		ledger := &models.UserLedger{DiscordID: "user1", GuildID: "guild1", Tickets: 1}

		result, err := DrawSlot(config, ledger, 80, "user1", "User One")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		assertEqual(t, models.MissPrize, result.Prize, "fallback prize")
		assertEqual(t, false, result.IsWin, "is win")
	})
}
