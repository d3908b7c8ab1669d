package lotteryService

import "lotteryBoardBot/models"

// DrawResult is what a successful reveal reports back: the ephemeral answer
// for the acting user and the broadcast payload for the alert channel.
type DrawResult struct {
	Slot        int
	Prize       string
	IsWin       bool
	UserID      string
	DisplayName string
}

// DrawSlot reveals a never-before-drawn slot, consuming one ticket. All
// preconditions are checked before anything is touched, so a failed draw
// leaves both documents exactly as they were and retries are always safe.
func DrawSlot(config *models.GuildConfig, ledger *models.UserLedger, slot int, userID, displayName string) (*DrawResult, error) {
	if slot < 1 || slot > models.TotalSlots || !config.Shuffled {
		return nil, &BoardNotReadyError{Slot: slot}
	}

	if ledger.Tickets <= 0 {
		return nil, &NoTicketsError{UserID: userID}
	}

	if prev, drawn := config.DrawnRegistry[slot]; drawn {
		return nil, &SlotAlreadyDrawnError{Slot: slot, DrawnBy: prev.UserID, DrawnByName: prev.DisplayName}
	}

	// A short assignment means an admin edited the board mid-setup; treat
	// the missing tail as misses rather than failing the reveal.
	prize := models.MissPrize
	if slot-1 < len(config.PrizeAssignment) {
		prize = config.PrizeAssignment[slot-1]
	}

	ledger.Tickets--
	ledger.TotalDraws++

	if config.DrawnRegistry == nil {
		config.DrawnRegistry = map[int]models.DrawnSlot{}
	}
	config.DrawnRegistry[slot] = models.DrawnSlot{
		UserID:      userID,
		DisplayName: displayName,
		Prize:       prize,
	}

	return &DrawResult{
		Slot:        slot,
		Prize:       prize,
		IsWin:       prize != models.MissPrize,
		UserID:      userID,
		DisplayName: displayName,
	}, nil
}
