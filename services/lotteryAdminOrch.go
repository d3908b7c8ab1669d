package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/models"
	"lotteryBoardBot/services/boardService"
	"lotteryBoardBot/services/common"
	"lotteryBoardBot/services/lotteryService"
)

func formatPrizeList(list []models.PrizeEntry) string {
	lines := make([]string, 0, len(list)+1)
	for idx, entry := range list {
		lines = append(lines, fmt.Sprintf("`%d.` **%s** — %d slots", idx+1, entry.Name, entry.Count))
	}
	lines = append(lines, fmt.Sprintf("\nTotal: **%d** slots", lotteryService.PoolTotal(list)))
	return strings.Join(lines, "\n")
}

func ShowPrizeList(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	config, err := coord.GuildConfig(i.GuildID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error loading guild config: %v", err), db)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Current Prize Pool",
		Description: formatPrizeList(config.PrizeList),
		Color:       0x3498DB,
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func AddPrize(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	name := options[0].StringValue()
	count := int(options[1].IntValue())

	if name == models.MissPrize {
		common.RespondEphemeral(s, i, fmt.Sprintf("**%s** is the reserved blank outcome and cannot be added as a prize.", models.MissPrize))
		return
	}

	list, err := coord.AddPrize(i.GuildID, name, count)
	if err != nil {
		var insufficient *lotteryService.InsufficientMissSlotsError
		if errors.As(err, &insufficient) {
			common.RespondEphemeral(s, i, fmt.Sprintf(
				"Not enough miss slots: requested **%d**, only **%d** left.",
				insufficient.Requested, insufficient.Available,
			))
			return
		}
		common.SendError(s, i, fmt.Errorf("error adding prize: %v", err), db)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Prize Added",
		Description: fmt.Sprintf("**%s** ×%d added.\n\n%s", name, count, formatPrizeList(list)),
		Color:       0x2ECC71,
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func ShufflePrizes(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	err := coord.ShufflePrizes(i.GuildID)
	if err != nil {
		var mismatch *lotteryService.PoolSizeMismatchError
		var locked *lotteryService.ShuffleLockedError
		switch {
		case errors.As(err, &mismatch):
			common.RespondEphemeral(s, i, fmt.Sprintf(
				"The prize pool must hold exactly **%d** slots to shuffle. It currently holds **%d**.",
				mismatch.Want, mismatch.Total,
			))
		case errors.As(err, &locked):
			common.RespondEphemeral(s, i, fmt.Sprintf(
				"**%d** slots have already been drawn. Run `/lottery-reset` before shuffling again.",
				locked.Drawn,
			))
		default:
			common.SendError(s, i, fmt.Errorf("error shuffling prizes: %v", err), db)
		}
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "🔀 Prizes have been shuffled onto the board. You can now post it with `/lottery-create-board`.",
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func ResetLottery(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	if err := coord.ResetBoard(i.GuildID); err != nil {
		common.SendError(s, i, fmt.Errorf("error resetting lottery: %v", err), db)
		return
	}

	// Re-render any posted board so every button goes back to green.
	config, err := coord.GuildConfig(i.GuildID)
	if err == nil {
		boardService.RefreshBoard(s, config)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "🔄 Lottery reset: prize pool back to 100 miss slots, drawn numbers and user ledgers cleared.",
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func SetAlertChannel(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	_, err := coord.UpdateGuildConfig(i.GuildID, func(c *models.GuildConfig) error {
		c.AlertChannelID = i.ChannelID
		return nil
	})
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error setting alert channel: %v", err), db)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("📢 Draw alerts will be posted in <#%s>.", i.ChannelID),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func SetMentionRole(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	role := options[0].RoleValue(s, i.GuildID)

	_, err := coord.UpdateGuildConfig(i.GuildID, func(c *models.GuildConfig) error {
		c.MentionRoleID = role.ID
		return nil
	})
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error setting mention role: %v", err), db)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("🏷️ Wins will mention <@&%s>.", role.ID),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func CreateBoard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	config, err := coord.GuildConfig(i.GuildID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error loading guild config: %v", err), db)
		return
	}
	if !config.Shuffled {
		common.RespondEphemeral(s, i, "⚠️ Run `/lottery-shuffle` before posting the board.")
		return
	}

	// Posting four messages takes longer than the 3s interaction window.
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	if err := boardService.PostBoard(s, coord, i.GuildID, i.ChannelID); err != nil {
		content := fmt.Sprintf("An error occured: %v", err)
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}

	_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: "🎰 Board posted.",
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func CreateInfoMessage(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	if err := boardService.PostInfoMessage(s, coord, i.GuildID, i.ChannelID); err != nil {
		common.SendError(s, i, fmt.Errorf("error posting info message: %v", err), db)
		return
	}

	common.RespondEphemeral(s, i, "🎫 Info message posted.")
}
