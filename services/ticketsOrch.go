package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/services/common"
	"lotteryBoardBot/services/lotteryService"
)

func ShowTickets(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	userID := i.Member.User.ID
	guildID := i.GuildID
	username := common.GetUsernameFromUser(i.Member.User)

	ledger, remaining, err := coord.LedgerInfo(guildID, userID, username)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error loading ticket info: %v", err), db)
		return
	}

	response := fmt.Sprintf(
		"**🎫 Ticket info for %s**\n\nTickets held: **%d**\nTotal draws so far: **%d**\nClaims left today: **%d**",
		username, ledger.Tickets, ledger.TotalDraws, remaining,
	)
	common.RespondEphemeral(s, i, response)
}

func GiveTickets(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	targetUser := options[0].UserValue(s)
	amount := int(options[1].IntValue())

	if amount == 0 {
		common.RespondEphemeral(s, i, "Please enter a non-zero amount.")
		return
	}

	balance, err := coord.GrantTickets(i.GuildID, targetUser.ID, amount)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error granting tickets: %v", err), db)
		return
	}

	response := fmt.Sprintf("**%s** now holds **%d** tickets.", common.GetUsernameFromUser(targetUser), balance)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: response,
		},
	})
	if err != nil {
		return
	}
}
