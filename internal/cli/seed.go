package cli

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/novelzone/internal/config"
	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/seed"
)

type SeedCommand struct {
	Database   DatabaseFlags
	BcryptCost int

	defaults config.Database
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{defaults: config.NewConfig().Database}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cmd.Database.register(fs, cmd.defaults)
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost for the sample users' passwords")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert the sample reader, author, genres, novel and chapters.\n")
		fmt.Fprintf(os.Stderr, "Does nothing when the sample novel already exists.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BcryptCost < bcrypt.MinCost || cmd.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt-cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (cmd *SeedCommand) Run() error {
	db, err := database.Open(cmd.Database.config(cmd.defaults))
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := seed.Run(db.DB, seed.Options{BcryptCost: cmd.BcryptCost})
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Printf("Sample novel %q already present (id %d), nothing to do\n", seed.SampleNovelSlug, result.NovelID)
		return nil
	}
	fmt.Printf("Database seeded with sample data (novel %q, id %d)\n", seed.SampleNovelSlug, result.NovelID)
	return nil
}
