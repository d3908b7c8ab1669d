package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/services/lotteryService"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	switch i.ApplicationCommandData().Name {
	case "my-tickets":
		ShowTickets(s, i, db, coord)
	case "lottery-leaderboard":
		ShowLeaderboard(s, i, db, coord)
	case "give-tickets":
		GiveTickets(s, i, db, coord)
	case "lottery-prizes":
		ShowPrizeList(s, i, db, coord)
	case "lottery-add-prize":
		AddPrize(s, i, db, coord)
	case "lottery-shuffle":
		ShufflePrizes(s, i, db, coord)
	case "lottery-reset":
		ResetLottery(s, i, db, coord)
	case "lottery-set-alert-channel":
		SetAlertChannel(s, i, db, coord)
	case "lottery-set-mention-role":
		SetMentionRole(s, i, db, coord)
	case "lottery-create-board":
		CreateBoard(s, i, db, coord)
	case "lottery-create-info":
		CreateInfoMessage(s, i, db, coord)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "my-tickets",
			Description: "Show your tickets, total draws, and claims left today",
		},
		{
			Name:        "lottery-leaderboard",
			Description: "Show the most active players on the lottery board",
		},
		{
			Name:        "give-tickets",
			Description: "🛡 Grant (or deduct) draw tickets - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to adjust",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "amount",
					Description: "Tickets to add (negative to deduct)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "lottery-prizes",
			Description: "🛡 Show the current prize pool - ADMIN ONLY",
		},
		{
			Name:        "lottery-add-prize",
			Description: "🛡 Convert miss slots into a prize - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "name",
					Description: "Prize name",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "count",
					Description: "How many slots this prize takes",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
					MinValue:    float64Ptr(1),
				},
			},
		},
		{
			Name:        "lottery-shuffle",
			Description: "🛡 Randomly assign the prize pool to slots 1-100 - ADMIN ONLY",
		},
		{
			Name:        "lottery-reset",
			Description: "🛡 Reset the board, prize pool, and all user tickets - ADMIN ONLY",
		},
		{
			Name:        "lottery-set-alert-channel",
			Description: "🛡 Post draw alerts in this channel - ADMIN ONLY",
		},
		{
			Name:        "lottery-set-mention-role",
			Description: "🛡 Role to mention when someone wins - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "role",
					Description: "Role to mention on wins",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
			},
		},
		{
			Name:        "lottery-create-board",
			Description: "🛡 Post the lottery board in this channel - ADMIN ONLY",
		},
		{
			Name:        "lottery-create-info",
			Description: "🛡 Post the ticket claim/info message in this channel - ADMIN ONLY",
		},
	}

	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		rcmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%v' command: %v", cmd.Name, err)
		}
		registeredCommands[i] = rcmd
	}

	return nil
}

func float64Ptr(v float64) *float64 { return &v }
