package messageService

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"lotteryBoardBot/models"
	"lotteryBoardBot/services/lotteryService"
)

// SendDrawAlert posts the win/miss broadcast to the guild's alert channel.
// Delivery is best effort; a failed alert never fails the draw itself.
func SendDrawAlert(s *discordgo.Session, config *models.GuildConfig, result *lotteryService.DrawResult) {
	if config.AlertChannelID == "" {
		return
	}

	var content string
	var embed *discordgo.MessageEmbed

	if result.IsWin {
		if config.MentionRoleID != "" {
			content = fmt.Sprintf("<@&%s>", config.MentionRoleID)
		}
		embed = BuildWinEmbed(result)
	} else {
		embed = BuildMissEmbed(result)
	}

	_, err := s.ChannelMessageSendComplex(config.AlertChannelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Printf("Error sending draw alert for guild %s: %v", config.GuildID, err)
	}
}

func BuildWinEmbed(result *lotteryService.DrawResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Winner!",
		Description: fmt.Sprintf("<@%s> drew slot **%d** and won **%s**!", result.UserID, result.Slot, result.Prize),
		Color:       0xF1C40F,
	}
}

func BuildMissEmbed(result *lotteryService.DrawResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎰 Draw Result",
		Description: fmt.Sprintf("<@%s> drew slot **%d**. (miss)", result.UserID, result.Slot),
		Color:       0x95A5A6,
	}
}
