package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/novelzone/internal/config"
	"github.com/mrlokans/novelzone/internal/database"
)

// DatabaseFlags are shared by every command that opens the catalog.
type DatabaseFlags struct {
	Driver string
	Path   string
	DSN    string
}

func (f *DatabaseFlags) register(fs *flag.FlagSet, defaults config.Database) {
	fs.StringVar(&f.Driver, "driver", defaults.Driver, "Database driver: sqlite or postgres")
	fs.StringVar(&f.Path, "db", defaults.Path, "Path to the sqlite database file")
	fs.StringVar(&f.DSN, "dsn", defaults.DSN, "Postgres connection string (driver=postgres)")
}

func (f *DatabaseFlags) config(defaults config.Database) config.Database {
	cfg := defaults
	cfg.Driver = f.Driver
	cfg.Path = f.Path
	cfg.DSN = f.DSN
	return cfg
}

type InitDBCommand struct {
	Database DatabaseFlags

	defaults config.Database
}

func NewInitDBCommand() *InitDBCommand {
	return &InitDBCommand{defaults: config.NewConfig().Database}
}

func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ContinueOnError)
	cmd.Database.register(fs, cmd.defaults)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the catalog tables, indexes and foreign keys.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s init-db -db ./novelzone.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s init-db -driver postgres -dsn 'host=localhost user=novelzone dbname=novelzone'\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *InitDBCommand) Run() error {
	db, err := database.Open(cmd.Database.config(cmd.defaults))
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := db.Tables()
	if err != nil {
		return err
	}

	fmt.Printf("Database initialized (%s): %s\n", db.Driver, strings.Join(tables, ", "))
	return nil
}
