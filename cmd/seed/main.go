package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dom/riyadah-elite/internal/config"
	"github.com/dom/riyadah-elite/internal/logging"
	"github.com/dom/riyadah-elite/internal/repository/postgres"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "staff", "catalog":
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: DATABASE_URL is required")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgres.NewConnection(cfg.DatabaseURL, gormlogger.Warn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	seeder := NewSeeder(postgres.NewRepositories(db), cfg, logger)

	ctx := context.Background()
	switch command {
	case "staff":
		err = staffCmd(ctx, seeder, args)
	case "catalog":
		err = catalogCmd(ctx, seeder, args)
	}
	if err != nil {
		logger.Fatal(command+" failed", zap.Error(err))
	}
}

func printUsage() {
	fmt.Println(`Seed - operator tool for the Riyadah Elite API

USAGE:
  seed <command> [options]

COMMANDS:
  staff     Create an admin, host or moderator account
  catalog   Insert demo rewards and an upcoming tournament
  help      Show this help message

ENVIRONMENT:
  DATABASE_URL   Postgres connection string (required)
  CONFIG_FILE    Optional YAML config file

EXAMPLES:
  # Create the first admin
  seed staff --role=admin --name="Site Admin" --email=admin@example.com --password=changeme123

  # Populate the store, attributing the tournament to an existing admin
  seed catalog --admin=admin@example.com`)
}

func staffCmd(ctx context.Context, seeder *Seeder, args []string) error {
	fs := flag.NewFlagSet("staff", flag.ExitOnError)
	role := fs.String("role", "admin", "Account partition: admin, host or moderator")
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Login email")
	password := fs.String("password", "", "Initial password")
	fs.Parse(args) //nolint:errcheck

	account, err := seeder.CreateStaff(ctx, StaffInput{
		Role:     *role,
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %s account %s (%s)\n", account.Kind, account.Email, account.ID)
	return nil
}

func catalogCmd(ctx context.Context, seeder *Seeder, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	admin := fs.String("admin", "", "Email of the admin recorded as tournament creator")
	fs.Parse(args) //nolint:errcheck

	result, err := seeder.SeedCatalog(ctx, *admin)
	if err != nil {
		return err
	}

	fmt.Printf("Inserted %d rewards and tournament %q\n", len(result.Rewards), result.Tournament.Title)
	return nil
}
