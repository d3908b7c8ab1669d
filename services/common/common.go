package common

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/models"
)

func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Use member data from the interaction - no privileged intent needed
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Printf("Error fetching roles from API: %v", err)
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Printf("Role %s not found in guild %s", roleID, i.GuildID)
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// SendError reports an operational failure to the acting user and records
// it in the error log table. Logical rejections (no tickets, slot taken)
// have their own friendly responses and never go through here.
func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	fmt.Println(err)

	guildId := ""
	if i != nil {
		guildId = i.GuildID
		localErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("An error occured: %v", err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if localErr != nil {
			log.Printf("Error sending interaction: %v", localErr)
		}
	}
	errLog := models.ErrorLog{
		GuildID: guildId,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// RespondEphemeral sends a private reply to the acting user.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending ephemeral response: %v", err)
	}
}

// GetUsernameFromUser extracts username from a discordgo.User object
func GetUsernameFromUser(user *discordgo.User) string {
	if user == nil {
		return "Unknown User"
	}
	username := user.GlobalName
	if username == "" {
		username = user.Username
	}
	if username == "" {
		return "Unknown User"
	}
	return username
}

// GetDisplayName prefers the member's guild nickname over the account name.
func GetDisplayName(member *discordgo.Member) string {
	if member == nil {
		return "Unknown User"
	}
	if member.Nick != "" {
		return member.Nick
	}
	return GetUsernameFromUser(member.User)
}

// GetUsernameWithDB gets username from the ledger first, then falls back to
// the state cache.
func GetUsernameWithDB(db *gorm.DB, s *discordgo.Session, guildId string, userId string) string {
	var ledger models.UserLedger
	if err := db.Where("discord_id = ? AND guild_id = ?", userId, guildId).First(&ledger).Error; err == nil {
		if ledger.Username != nil && *ledger.Username != "" {
			return *ledger.Username
		}
	}

	// Fallback to state cache (limited without members intent)
	if guild, err := s.State.Guild(guildId); err == nil && guild != nil {
		for _, member := range guild.Members {
			if member.User != nil && member.User.ID == userId {
				return GetUsernameFromUser(member.User)
			}
		}
	}

	return "Unknown User"
}
