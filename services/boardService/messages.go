package boardService

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"lotteryBoardBot/models"
	"lotteryBoardBot/services/lotteryService"
)

const (
	boardTitle     = "# 🎰 Lottery Board 🎰"
	boardSeparator = "╴╴╴╴╴ ⊹ ╴╴╴╴╴ ⊹ ╴╴╴╴╴"
)

// PostBoard posts the title plus the four board segments to a channel,
// deleting any previously posted board, and records the new message ids on
// the guild config through the coordinator.
func PostBoard(s *discordgo.Session, coord *lotteryService.Coordinator, guildID, channelID string) error {
	config, err := coord.GuildConfig(guildID)
	if err != nil {
		return err
	}

	deleteMessages(s, config.BoardChannelID, config.BoardMessageIDs)

	if _, err := s.ChannelMessageSend(channelID, boardTitle); err != nil {
		return fmt.Errorf("error posting board title: %w", err)
	}

	messageIDs := make([]string, 0, SegmentCount)
	for segment := 0; segment < SegmentCount; segment++ {
		msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Components: SegmentComponents(config, segment),
		})
		if err != nil {
			return fmt.Errorf("error posting board segment %d: %w", segment, err)
		}
		messageIDs = append(messageIDs, msg.ID)

		if segment < SegmentCount-1 {
			if _, err := s.ChannelMessageSend(channelID, boardSeparator); err != nil {
				return fmt.Errorf("error posting board separator: %w", err)
			}
		}
	}

	_, err = coord.UpdateGuildConfig(guildID, func(c *models.GuildConfig) error {
		c.BoardChannelID = channelID
		c.BoardMessageIDs = messageIDs
		return nil
	})
	return err
}

// PostInfoMessage posts the claim/info message, replacing any previous one.
func PostInfoMessage(s *discordgo.Session, coord *lotteryService.Coordinator, guildID, channelID string) error {
	config, err := coord.GuildConfig(guildID)
	if err != nil {
		return err
	}

	if config.InfoMessageID != "" && config.InfoChannelID != "" {
		deleteMessages(s, config.InfoChannelID, []string{config.InfoMessageID})
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{InfoEmbed()},
		Components: InfoComponents(),
	})
	if err != nil {
		return fmt.Errorf("error posting info message: %w", err)
	}

	_, err = coord.UpdateGuildConfig(guildID, func(c *models.GuildConfig) error {
		c.InfoChannelID = channelID
		c.InfoMessageID = msg.ID
		return nil
	})
	return err
}

// RefreshSegment re-renders one posted segment in place after a draw.
func RefreshSegment(s *discordgo.Session, config *models.GuildConfig, segment int) error {
	if config.BoardChannelID == "" || segment >= len(config.BoardMessageIDs) {
		return nil
	}

	components := SegmentComponents(config, segment)
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    config.BoardChannelID,
		ID:         config.BoardMessageIDs[segment],
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("error refreshing board segment %d: %w", segment, err)
	}
	return nil
}

// RefreshBoard re-renders every posted segment from persisted state.
func RefreshBoard(s *discordgo.Session, config *models.GuildConfig) {
	for segment := 0; segment < len(config.BoardMessageIDs) && segment < SegmentCount; segment++ {
		if err := RefreshSegment(s, config, segment); err != nil {
			log.Printf("Error refreshing board for guild %s: %v", config.GuildID, err)
		}
	}
}

func deleteMessages(s *discordgo.Session, channelID string, messageIDs []string) {
	if channelID == "" {
		return
	}
	for _, id := range messageIDs {
		// Old messages may already be gone; that is fine.
		if err := s.ChannelMessageDelete(channelID, id); err != nil {
			log.Printf("Could not delete old board message %s: %v", id, err)
		}
	}
}
