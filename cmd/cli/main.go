package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/config"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

const usage = "expected 'migrate', 'seed' or 'add-account' subcommand"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load(".env", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Logger(os.Stderr))

	var run func(ctx context.Context, db *store.Store, args []string) error
	switch os.Args[1] {
	case "migrate":
		// migrations run for every subcommand below
		run = func(context.Context, *store.Store, []string) error {
			fmt.Println("Migrations applied.")
			return nil
		}
	case "seed":
		run = seed
	case "add-account":
		run = addAccount
	default:
		fmt.Println(usage)
		os.Exit(1)
	}

	db, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	// Ensure tables exist if running the CLI before the server
	if err := db.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, db, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, db *store.Store, _ []string) error {
	if err := service.NewSeeder(db, nil).Seed(ctx); err != nil {
		return err
	}
	fmt.Println("Database seeded.")
	return nil
}

func addAccount(ctx context.Context, db *store.Store, args []string) error {
	flags := pflag.NewFlagSet("add-account", pflag.ExitOnError)
	username := flags.StringP("username", "u", "", "Username for the new account")
	password := flags.StringP("password", "p", "", "Password for the new account")
	privilege := flags.String("privilege", "standard", "standard or admin")
	company := flags.String("company", "", "Company name")
	address := flags.String("shipping-address", "", "Shipping address")
	contact := flags.String("contact", "", "Contact info")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *username == "" || *password == "" {
		flags.PrintDefaults()
		return fmt.Errorf("username and password are required")
	}

	account, err := service.NewAccounts(db).Register(ctx, service.Registration{
		Username:        *username,
		Password:        *password,
		Privilege:       *privilege,
		Company:         *company,
		ShippingAddress: *address,
		ContactInfo:     *contact,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account '%s' created with privilege %s.\n", account.Username, account.Privilege)
	return nil
}
