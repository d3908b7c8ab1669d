package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lotteryBoardBot/models"
	"lotteryBoardBot/scheduler"
	"lotteryBoardBot/services"
	"lotteryBoardBot/services/lotteryService"
)

var db *gorm.DB
var coord *lotteryService.Coordinator

func openDatabase(rawURL string) (*gorm.DB, error) {
	u, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %v", err)
	}

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch u.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(u.DSN+"?charset=utf8mb4&parseTime=True&loc=Local"), config)
	case "sqlserver":
		return gorm.Open(sqlserver.Open(rawURL), config)
	case "sqlite3":
		return gorm.Open(sqlite.Open(u.DSN), config)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", u.Driver)
	}
}

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatalf("DATABASE_URL not set in environment variables")
	}

	db, err = openDatabase(connString)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.GuildConfig{}, &models.UserLedger{}, &models.ErrorLog{}, &models.Migration{})
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if err := services.RunDefaultConfigMigration(db); err != nil {
		log.Fatalf("Error running default config migration: %v", err)
	}

	opts := lotteryService.Options{}
	if limit := os.Getenv("DAILY_CLAIM_LIMIT"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed <= 0 {
			log.Fatalf("DAILY_CLAIM_LIMIT must be a positive integer, got %q", limit)
		}
		opts.DailyClaimLimit = parsed
	}
	if tz := os.Getenv("LOTTERY_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Invalid LOTTERY_TIMEZONE %q: %v", tz, err)
		}
		opts.Location = loc
	}
	coord = lotteryService.New(db, opts)
}

func main() {
	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatalf("DISCORD_BOT_TOKEN not set in environment variables")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	dg.AddHandler(interactionCreate)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		err := s.UpdateGameStatus(0, "Spinning the Lottery Board!")
		if err != nil {
			return
		}
	})

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	err = dg.Open()
	if err != nil {
		log.Fatalf("Error opening Discord session: %v", err)
	}
	defer func(dg *discordgo.Session) {
		err := dg.Close()
		if err != nil {

		}
	}(dg)

	err = services.RegisterCommands(dg)
	if err != nil {
		log.Fatalf("Error registering commands: %v", err)
	}

	scheduler.SetupCron(dg, db)

	log.Println("Bot is running. Press CTRL+C to exit.")
	select {}
}

func interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		services.HandleSlashCommand(s, i, db, coord)
	case discordgo.InteractionMessageComponent:
		services.HandleComponentInteraction(s, i, db, coord)
	}
}
