package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/services/common"
	"lotteryBoardBot/services/lotteryService"
)

func ShowLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	guildID := i.GuildID

	ledgers, err := coord.Leaderboard(guildID, 10)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error loading leaderboard: %v", err), db)
		return
	}

	if len(ledgers) == 0 {
		response := "Nobody has drawn from the board yet."
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: response,
			},
		})
		if err != nil {
			return
		}
		return
	}

	description := ""
	for idx, ledger := range ledgers {
		username := common.GetUsernameWithDB(db, s, guildID, ledger.DiscordID)
		description += fmt.Sprintf("**%d. %s** - %d draws, %d tickets held\n", idx+1, username, ledger.TotalDraws, ledger.Tickets)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Lottery Leaderboard",
		Description: description,
		Color:       0x00ff00,
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		return
	}
}
