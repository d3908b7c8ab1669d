package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"lotteryBoardBot/models"
)

// RunDefaultConfigMigration backfills a default GuildConfig for any guild
// that already has user ledgers but no config document. Ledgers predate the
// config table in deployments migrated from the JSON-file storage, and a
// missing config would otherwise only appear on the guild's next admin
// command.
func RunDefaultConfigMigration(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "default_guild_config").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		log.Println("Default guild config migration has already been executed. Skipping.")
		return nil
	}

	var guildIDs []string
	err := db.Model(&models.UserLedger{}).
		Distinct("guild_id").
		Pluck("guild_id", &guildIDs).Error
	if err != nil {
		return fmt.Errorf("error listing ledger guilds: %v", err)
	}

	created := 0
	for _, guildID := range guildIDs {
		var count int64
		if err := db.Model(&models.GuildConfig{}).Where("guild_id = ?", guildID).Count(&count).Error; err != nil {
			return fmt.Errorf("error checking config for guild %s: %v", guildID, err)
		}
		if count > 0 {
			continue
		}

		config := models.GuildConfig{
			GuildID:       guildID,
			PrizeList:     models.DefaultPrizeList(),
			DrawnRegistry: map[int]models.DrawnSlot{},
		}
		if err := db.Create(&config).Error; err != nil {
			return fmt.Errorf("error creating config for guild %s: %v", guildID, err)
		}
		created++
	}

	migration := models.Migration{
		Name:       "default_guild_config",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error recording migration: %v", err)
	}

	log.Printf("Default guild config migration complete: %d configs created.", created)
	return nil
}
