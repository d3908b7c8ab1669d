package models

import "gorm.io/gorm"

// UserLedger is the per-guild, per-user ticket record. LastClaimDate holds a
// guild-local calendar date in ISO form; a mismatch with today's date means
// DailyClaims is stale and gets reset on the next claim or info lookup.
type UserLedger struct {
	gorm.Model
	ID            uint   `gorm:"primaryKey"`
	DiscordID     string `gorm:"uniqueIndex:ledger_user_guild_idx; size:64"`
	GuildID       string `gorm:"uniqueIndex:ledger_user_guild_idx; size:64"`
	Tickets       int
	TotalDraws    int
	DailyClaims   int
	LastClaimDate string `gorm:"size:16"`
	Username      *string
}
