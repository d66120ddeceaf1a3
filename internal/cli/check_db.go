package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/novelzone/internal/config"
	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/catalog"
	"github.com/mrlokans/novelzone/internal/database/integrity"
	"github.com/mrlokans/novelzone/internal/database/seed"
)

type CheckDBCommand struct {
	Database DatabaseFlags
	Slug     string

	defaults config.Database
	out      io.Writer
}

func NewCheckDBCommand() *CheckDBCommand {
	return &CheckDBCommand{defaults: config.NewConfig().Database, out: os.Stdout}
}

func (cmd *CheckDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check-db", flag.ContinueOnError)
	cmd.Database.register(fs, cmd.defaults)
	fs.StringVar(&cmd.Slug, "slug", seed.SampleNovelSlug, "Novel whose chapters are listed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print every novel with its genres, one novel's chapters and the orphaned row report.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *CheckDBCommand) Run() error {
	db, err := database.Open(cmd.Database.config(cmd.defaults))
	if err != nil {
		return err
	}
	defer db.Close()

	manager, err := database.NewManager(db)
	if err != nil {
		return err
	}

	return manager.WithHandle(context.Background(), func(h *database.Handle) error {
		return cmd.report(h)
	})
}

func (cmd *CheckDBCommand) report(h *database.Handle) error {
	repo := catalog.NewRepository(h.DB())

	novels, err := repo.ListNovelsWithGenres()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "Novels (%d):\n", len(novels))
	for _, n := range novels {
		author := "(unknown author)"
		if n.AuthorName != nil {
			author = *n.AuthorName
		}
		fmt.Fprintf(cmd.out, "  %d. %s by %s [%s] score=%.1f genres: %s\n",
			n.ID, n.Title, author, n.Slug, n.PopularityScore, catalog.GenreList(n.Genres))
	}

	novel, err := repo.GetNovelBySlug(cmd.Slug)
	if err != nil {
		if !database.IsNotFound(err) {
			return err
		}
		fmt.Fprintf(cmd.out, "\nNovel %q not found\n", cmd.Slug)
	} else {
		chapters, err := repo.ListChapters(novel.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.out, "\nChapters of %q (%d):\n", cmd.Slug, len(chapters))
		for _, ch := range chapters {
			fmt.Fprintf(cmd.out, "  Chapter %d: %s\n", ch.ChapterNumber, ch.Title)
		}
	}

	report, err := integrity.NewChecker(h.DB()).Check()
	if err != nil {
		return err
	}
	if report.Clean() {
		fmt.Fprintf(cmd.out, "\nIntegrity: no orphaned rows\n")
		return nil
	}
	fmt.Fprintf(cmd.out, "\nIntegrity: %d orphaned rows (%s)\n", report.Total(), report)
	return nil
}
