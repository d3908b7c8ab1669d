package boardService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"lotteryBoardBot/models"
)

const (
	// The board is split across four messages of 25 buttons each, the
	// most a single Discord message can carry (5 action rows of 5).
	SlotsPerSegment = 25
	SegmentCount    = models.TotalSlots / SlotsPerSegment
	slotsPerRow     = 5
)

// SegmentComponents renders one 25-slot segment of the board purely from
// the persisted config. Drawn slots become disabled grey buttons, so the
// whole view can be rebuilt after a restart with no in-memory state.
func SegmentComponents(config *models.GuildConfig, segment int) []discordgo.MessageComponent {
	firstSlot := segment*SlotsPerSegment + 1

	rows := make([]discordgo.MessageComponent, 0, SlotsPerSegment/slotsPerRow)
	for rowStart := firstSlot; rowStart < firstSlot+SlotsPerSegment; rowStart += slotsPerRow {
		row := discordgo.ActionsRow{}
		for slot := rowStart; slot < rowStart+slotsPerRow; slot++ {
			row.Components = append(row.Components, slotButton(config, slot))
		}
		rows = append(rows, row)
	}
	return rows
}

func slotButton(config *models.GuildConfig, slot int) discordgo.Button {
	_, drawn := config.DrawnRegistry[slot]

	style := discordgo.SuccessButton
	if drawn {
		style = discordgo.SecondaryButton
	}

	return discordgo.Button{
		Label:    fmt.Sprintf("%d", slot),
		Style:    style,
		Disabled: drawn,
		CustomID: fmt.Sprintf("lottery_number_%d", slot),
	}
}

// SegmentForSlot maps a slot to the board segment (message) that shows it.
func SegmentForSlot(slot int) int {
	return (slot - 1) / SlotsPerSegment
}

// InfoComponents renders the claim/info buttons that accompany the board.
func InfoComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "My Tickets",
					Style:    discordgo.PrimaryButton,
					CustomID: "lottery_info",
					Emoji: &discordgo.ComponentEmoji{
						Name: "🎫",
					},
				},
				discordgo.Button{
					Label:    "Claim Tickets",
					Style:    discordgo.SuccessButton,
					CustomID: "lottery_claim",
					Emoji: &discordgo.ComponentEmoji{
						Name: "🎁",
					},
				},
			},
		},
	}
}

// InfoEmbed is the static embed above the claim buttons.
func InfoEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎰 Lottery Board",
		Description: "Use the buttons below to check your tickets or claim today's tickets.",
		Color:       0x9B59B6,
	}
}
