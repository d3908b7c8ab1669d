package scheduler_jobs

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/models"
	"lotteryBoardBot/services/boardService"
)

// RefreshBoards re-renders every posted board from persisted state. Edits
// lost to Discord hiccups (a draw succeeded but the segment edit failed)
// heal here instead of staying stale until the next draw on that segment.
func RefreshBoards(s *discordgo.Session, db *gorm.DB) error {
	var configs []models.GuildConfig
	result := db.Where("board_channel_id <> ''").Find(&configs)
	if result.Error != nil {
		return result.Error
	}

	for _, config := range configs {
		if len(config.BoardMessageIDs) == 0 {
			continue
		}
		fmt.Printf("Refreshing lottery board for guild %s\n", config.GuildID)
		boardService.RefreshBoard(s, &config)
	}

	return nil
}
