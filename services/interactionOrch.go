package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"lotteryBoardBot/services/boardService"
	"lotteryBoardBot/services/common"
	"lotteryBoardBot/services/lotteryService"
	"lotteryBoardBot/services/messageService"
)

var claimMessages = []string{
	"I peeked at today's fate for you... you get **%d** draw tickets. Choose carefully.",
	"The stars say **%d** tickets suit you today. Good luck.",
	"After much deliberation... **%d** tickets. Spend them well.",
	"I saw **%d** sparks of light in your fortune. May they land somewhere good.",
}

const claimAlreadyDone = "You already received today's tickets. Come back tomorrow... ᶻ 𝗓 𐰁"

func HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, "lottery_number_"):
		slot, err := strconv.Atoi(strings.TrimPrefix(customID, "lottery_number_"))
		if err != nil {
			log.Printf("Error parsing slot from custom ID %q: %v", customID, err)
			return
		}
		handleDraw(s, i, db, coord, slot)
	case customID == "lottery_claim":
		handleClaim(s, i, db, coord)
	case customID == "lottery_info":
		ShowTickets(s, i, db, coord)
	}
}

func handleDraw(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator, slot int) {
	userID := i.Member.User.ID
	displayName := common.GetDisplayName(i.Member)

	result, err := coord.DrawNumber(i.GuildID, userID, displayName, slot)
	if err != nil {
		var notReady *lotteryService.BoardNotReadyError
		var noTickets *lotteryService.NoTicketsError
		var alreadyDrawn *lotteryService.SlotAlreadyDrawnError
		switch {
		case errors.As(err, &notReady):
			common.RespondEphemeral(s, i, "The board is not ready yet. An admin has to shuffle the prizes first.")
		case errors.As(err, &noTickets):
			common.RespondEphemeral(s, i, "You have no draw tickets. Claim your tickets first.")
		case errors.As(err, &alreadyDrawn):
			common.RespondEphemeral(s, i, fmt.Sprintf("Slot **%d** was already drawn by someone else.", alreadyDrawn.Slot))
		default:
			common.SendError(s, i, fmt.Errorf("error drawing slot %d: %v", slot, err), db)
		}
		return
	}

	var resultMsg string
	if result.IsWin {
		resultMsg = fmt.Sprintf("Something is sparkling... it's **%s**! Congratulations! ✨", result.Prize)
	} else {
		resultMsg = "Nothing there... maybe the next one."
	}
	common.RespondEphemeral(s, i, fmt.Sprintf("You drew slot **%d**.\n%s", result.Slot, resultMsg))

	// Re-render the segment that holds this slot and fire the broadcast.
	// Both are cosmetic next to the persisted draw, so failures only log.
	config, err := coord.GuildConfig(i.GuildID)
	if err != nil {
		log.Printf("Error reloading config after draw in guild %s: %v", i.GuildID, err)
		return
	}
	if err := boardService.RefreshSegment(s, config, boardService.SegmentForSlot(result.Slot)); err != nil {
		log.Printf("Error refreshing board segment after draw: %v", err)
	}
	messageService.SendDrawAlert(s, config, result)
}

func handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, coord *lotteryService.Coordinator) {
	userID := i.Member.User.ID
	username := common.GetUsernameFromUser(i.Member.User)

	amount, _, err := coord.ClaimTickets(i.GuildID, userID, username)
	if err != nil {
		var limitReached *lotteryService.DailyLimitReachedError
		if errors.As(err, &limitReached) {
			common.RespondEphemeral(s, i, claimAlreadyDone)
			return
		}
		common.SendError(s, i, fmt.Errorf("error claiming tickets: %v", err), db)
		return
	}

	template := claimMessages[rand.Intn(len(claimMessages))]
	common.RespondEphemeral(s, i, fmt.Sprintf(template, amount))
}
