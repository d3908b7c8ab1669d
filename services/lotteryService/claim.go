package lotteryService

import (
	"math/rand"

	"lotteryBoardBot/models"
)

const (
	claimMinTickets = 1
	claimMaxTickets = 5
)

// rolloverDaily resets the daily claim counter when the ledger's last claim
// date is not today (guild-local). Returns true when a reset happened.
func rolloverDaily(ledger *models.UserLedger, today string) bool {
	if ledger.LastClaimDate == today {
		return false
	}
	ledger.DailyClaims = 0
	ledger.LastClaimDate = today
	return true
}

// Claim grants a random 1-5 tickets once the daily rollover has been
// applied. At the limit it fails with DailyLimitReachedError and leaves the
// ticket balance untouched; the rollover itself still sticks, since the date
// check is part of limit evaluation rather than a mutation of the balance.
func Claim(ledger *models.UserLedger, today string, dailyLimit int, rng *rand.Rand) (int, error) {
	rolloverDaily(ledger, today)

	if ledger.DailyClaims >= dailyLimit {
		return 0, &DailyLimitReachedError{Limit: dailyLimit}
	}

	amount := claimMinTickets + rng.Intn(claimMaxTickets-claimMinTickets+1)
	ledger.Tickets += amount
	ledger.DailyClaims++

	return amount, nil
}

// RemainingClaims reports how many claims the user has left today, applying
// the rollover first so yesterday's count does not leak into the answer.
func RemainingClaims(ledger *models.UserLedger, today string, dailyLimit int) int {
	rolloverDaily(ledger, today)
	remaining := dailyLimit - ledger.DailyClaims
	if remaining < 0 {
		return 0
	}
	return remaining
}
