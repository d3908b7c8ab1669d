package lotteryService

import (
	"gorm.io/gorm"

	"lotteryBoardBot/models"
)

// The two documents are read and replaced whole. Every gorm failure is
// reported as StoreUnavailableError so callers can tell operational faults
// apart from logical rejections.

func loadGuildConfig(db *gorm.DB, guildID string) (*models.GuildConfig, error) {
	var config models.GuildConfig
	result := db.Where(models.GuildConfig{GuildID: guildID}).
		Attrs(models.GuildConfig{
			PrizeList:     models.DefaultPrizeList(),
			DrawnRegistry: map[int]models.DrawnSlot{},
		}).
		FirstOrCreate(&config)
	if result.Error != nil {
		return nil, &StoreUnavailableError{Op: "load guild config", Err: result.Error}
	}
	return &config, nil
}

func saveGuildConfig(db *gorm.DB, config *models.GuildConfig) error {
	if err := db.Save(config).Error; err != nil {
		return &StoreUnavailableError{Op: "save guild config", Err: err}
	}
	return nil
}

func loadLedger(db *gorm.DB, guildID, userID string) (*models.UserLedger, error) {
	var ledger models.UserLedger
	result := db.Where(models.UserLedger{GuildID: guildID, DiscordID: userID}).
		FirstOrCreate(&ledger)
	if result.Error != nil {
		return nil, &StoreUnavailableError{Op: "load user ledger", Err: result.Error}
	}
	return &ledger, nil
}

func saveLedger(db *gorm.DB, ledger *models.UserLedger) error {
	if err := db.Save(ledger).Error; err != nil {
		return &StoreUnavailableError{Op: "save user ledger", Err: err}
	}
	return nil
}

func deleteGuildLedgers(db *gorm.DB, guildID string) error {
	if err := db.Unscoped().Where("guild_id = ?", guildID).Delete(&models.UserLedger{}).Error; err != nil {
		return &StoreUnavailableError{Op: "delete guild ledgers", Err: err}
	}
	return nil
}
