package scheduler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"lotteryBoardBot/models"
	"lotteryBoardBot/scheduler/scheduler_jobs"
)

func SetupCron(s *discordgo.Session, db *gorm.DB) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 10 0 * * *", func() {
		// Shortly after midnight, once the daily claims have rolled over
		err := scheduler_jobs.RefreshBoards(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 0 4 * * *", func() {
		// At 4am every day
		err := scheduler_jobs.PruneErrorLogs(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			GuildID: "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}
