package lotteryService

import "fmt"

// The lottery operations fail in ways the caller is expected to render back
// to the user, so each failure type carries the numbers needed for a message.
// Only StoreUnavailableError is an operational fault; the rest are terminal
// outcomes and must never be retried by the coordinator.

type InsufficientMissSlotsError struct {
	Requested int
	Available int
}

func (e *InsufficientMissSlotsError) Error() string {
	return fmt.Sprintf("cannot convert %d miss slots, only %d available", e.Requested, e.Available)
}

type PoolSizeMismatchError struct {
	Total int
	Want  int
}

func (e *PoolSizeMismatchError) Error() string {
	return fmt.Sprintf("prize pool holds %d slots, need exactly %d to shuffle", e.Total, e.Want)
}

type BoardNotReadyError struct {
	Slot int
}

func (e *BoardNotReadyError) Error() string {
	return fmt.Sprintf("board is not ready for a draw on slot %d", e.Slot)
}

type NoTicketsError struct {
	UserID string
}

func (e *NoTicketsError) Error() string {
	return fmt.Sprintf("user %s has no tickets", e.UserID)
}

type SlotAlreadyDrawnError struct {
	Slot        int
	DrawnBy     string
	DrawnByName string
}

func (e *SlotAlreadyDrawnError) Error() string {
	return fmt.Sprintf("slot %d was already drawn by %s", e.Slot, e.DrawnBy)
}

type DailyLimitReachedError struct {
	Limit int
}

func (e *DailyLimitReachedError) Error() string {
	return fmt.Sprintf("daily claim limit of %d reached", e.Limit)
}

// ShuffleLockedError rejects a re-shuffle once draws exist. Re-assigning
// prizes under revealed slots would contradict what users were already told
// they won, so the board must be reset before it can be shuffled again.
type ShuffleLockedError struct {
	Drawn int
}

func (e *ShuffleLockedError) Error() string {
	return fmt.Sprintf("cannot shuffle: %d slots already drawn, reset the board first", e.Drawn)
}

// StoreUnavailableError wraps a persistence failure or an exhausted lock
// wait. Nothing was persisted when this is returned.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
