package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/locallibrary/pkg/config"
	"github.com/shishobooks/locallibrary/pkg/database"
	"github.com/shishobooks/locallibrary/pkg/migrations"
	"github.com/shishobooks/locallibrary/pkg/seed"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		Reset bool `short:"r" long:"reset" description:"Delete every catalog record before seeding"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	res, err := seed.Run(log.WithContext(ctx), db, seed.Options{Reset: opts.Reset})
	if errors.Is(err, seed.ErrNotEmpty) {
		fmt.Println("The catalog already has data. Run with --reset to replace it.")
		os.Exit(1)
	}
	if err != nil {
		log.Err(err).Fatal("seed error")
	}

	fmt.Printf("Seeded %d authors, %d genres, %d books and %d copies\n", res.Authors, res.Genres, res.Books, res.BookInstances)

	if err := db.Close(); err != nil {
		log.Err(err).Error("database close error")
	}
}
