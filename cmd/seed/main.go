package main

import (
	"activitytracker/database"
	"activitytracker/internal/auth"
	"activitytracker/internal/config"
	"activitytracker/internal/repository"
	"activitytracker/internal/services"
	"activitytracker/internal/utils"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numUsers := seedCmd.Int("users", utils.DefaultNumUsers, "Number of dummy users to create")
	numActivities := seedCmd.Int("activities", utils.DefaultNumActivities, "Activities per user (max 8)")
	startIndex := seedCmd.Int("start", 1, "Index of the first seeduserN@example.com email")
	randSeed := seedCmd.Int64("rand-seed", time.Now().UnixNano(), "Seed for the random generator")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	// Load .env from the project root, or two levels up when run from cmd/seed/
	cfg := config.Load(".env", "../../.env")
	log.Printf("DB_DRIVER: %s", cfg.Database.Driver)

	ctx := context.Background()

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		if *numUsers <= 0 {
			log.Fatalf("--users must be positive, got %d", *numUsers)
		}
		if *numActivities < 0 {
			log.Fatalf("--activities must not be negative, got %d", *numActivities)
		}

		db := connect(cfg)
		defer database.Close(db)

		authHelper, err := auth.New(auth.Config{
			SigningKey: []byte(cfg.JWTSecret),
			Algorithm:  cfg.JWTAlgorithm,
			Issuer:     cfg.JWTIssuer,
			TokenTTL:   cfg.JWTTTL,
			BcryptCost: cfg.BcryptCost,
		})
		if err != nil {
			log.Fatalf("Invalid auth configuration: %v", err)
		}

		tx := repository.NewTransactor(db)
		userRepo := repository.NewUserRepository(db)
		activityRepo := repository.NewActivityRepository(db)
		seeder := utils.NewSeeder(
			services.NewUserService(tx, userRepo, authHelper),
			services.NewActivityService(tx, userRepo, activityRepo),
			*randSeed,
		)

		log.Printf("🌱 Seeding %d users with %d activities each", *numUsers, *numActivities)
		start := time.Now()
		if _, err := seeder.Seed(ctx, *startIndex, *numUsers, *numActivities); err != nil {
			log.Fatalf("Error seeding data: %v", err)
		}
		log.Printf("Seeding finished in %s (password for all users: %s)", time.Since(start).Round(time.Millisecond), utils.SeedPassword)

	case "stats":
		db := connect(cfg)
		defer database.Close(db)

		users, activities, err := utils.Stats(ctx, repository.NewUserRepository(db), repository.NewActivityRepository(db))
		if err != nil {
			log.Fatalf("Error getting stats: %v", err)
		}
		log.Println("📊 Database Statistics:")
		log.Printf("   users:      %d", users)
		log.Printf("   activities: %d", activities)

	case "clear":
		db := connect(cfg)
		defer database.Close(db)

		log.Println("🧹 Clearing all users and activities...")
		if err := utils.ClearAllData(ctx, db); err != nil {
			log.Fatalf("Error clearing data: %v", err)
		}

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func connect(cfg config.Config) *gorm.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	return db
}

func printHelp() {
	fmt.Println("Database utility tool for the Activity Tracker API")
	fmt.Println("\nUsage:")
	fmt.Println("  seed COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed         Create dummy users and activities")
	fmt.Println("               Options:")
	fmt.Println("                 --users=N       Number of dummy users to create (default: 100)")
	fmt.Println("                 --activities=N  Activities per user, at most 8 (default: 5)")
	fmt.Println("                 --start=N       Index of the first seeduserN@example.com (default: 1)")
	fmt.Println("                 --rand-seed=N   Seed for the random generator (default: current time)")
	fmt.Println("")
	fmt.Println("  stats        Show user and activity counts")
	fmt.Println("")
	fmt.Println("  clear        Delete all users and activities")
	fmt.Println("")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  seed seed --users=1000 --activities=3")
	fmt.Println("  seed seed --start=1001 --users=500")
	fmt.Println("  seed stats")
	fmt.Println("  seed clear")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_DRIVER    sqlite or postgres (default: sqlite)")
	fmt.Println("  DB_PATH      SQLite database file (default: activity.sqlite)")
	fmt.Println("  DB_HOST      Postgres host")
	fmt.Println("  DB_PORT      Postgres port")
	fmt.Println("  DB_USER      Postgres user")
	fmt.Println("  DB_PASSWORD  Postgres password")
	fmt.Println("  DB_NAME      Postgres database name")
	fmt.Println("  BCRYPT_COST  Password hashing cost used for seeded users")
}
