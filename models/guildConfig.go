package models

import "gorm.io/gorm"

// MissPrize is the reserved prize name for empty slots. The pool always
// sums to TotalSlots, so adding a real prize converts miss slots.
const MissPrize = "miss"

// TotalSlots is the number of positions on a lottery board.
const TotalSlots = 100

type PrizeEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DrawnSlot records who revealed a slot and what it paid out. The prize is
// copied from the assignment at draw time and never recomputed.
type DrawnSlot struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Prize       string `json:"prize"`
}

type GuildConfig struct {
	gorm.Model
	ID              uint   `gorm:"primaryKey"`
	GuildID         string `gorm:"uniqueIndex; size:64"`
	GuildName       string
	AlertChannelID  string
	MentionRoleID   string
	PrizeList       []PrizeEntry `gorm:"serializer:json"`
	Shuffled        bool
	PrizeAssignment []string          `gorm:"serializer:json"`
	DrawnRegistry   map[int]DrawnSlot `gorm:"serializer:json"`
	BoardChannelID  string
	BoardMessageIDs []string `gorm:"serializer:json"`
	InfoChannelID   string
	InfoMessageID   string
}

// DefaultPrizeList returns the all-miss pool a fresh guild starts with.
func DefaultPrizeList() []PrizeEntry {
	return []PrizeEntry{{Name: MissPrize, Count: TotalSlots}}
}
