// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"codeberg.org/noambuilds/site/internal/content"
	"codeberg.org/noambuilds/site/internal/database"
	"codeberg.org/noambuilds/site/internal/models"
	"codeberg.org/noambuilds/site/internal/repository"
	"github.com/urfave/cli/v3"
)

func waitlistCommand() *cli.Command {
	return &cli.Command{
		Name:  "waitlist",
		Usage: "Inspect waitlist signups",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Print pending and confirmed signups per product",
				Action: waitlistStats,
			},
		},
	}
}

func waitlistStats(ctx context.Context, cmd *cli.Command) error {
	db, err := database.Open(cmd.String("database-dsn"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	counts, err := repository.New(db).CountWaitlistSignups(ctx)
	if err != nil {
		return err
	}

	return printStats(cmd.Root().Writer, counts)
}

type productStats struct {
	pending, confirmed int64
}

// printStats writes one row per product, in the order the counts arrive.
func printStats(w io.Writer, counts []models.WaitlistCount) error {
	var order []string
	byProduct := make(map[string]*productStats)
	for _, c := range counts {
		s, ok := byProduct[c.Product]
		if !ok {
			s = &productStats{}
			byProduct[c.Product] = s
			order = append(order, c.Product)
		}
		switch c.Status {
		case models.WaitlistPending:
			s.pending += c.Count
		case models.WaitlistConfirmed:
			s.confirmed += c.Count
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tPENDING\tCONFIRMED")
	for _, product := range order {
		s := byProduct[product]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", product, content.ProductName(product), s.pending, s.confirmed)
	}
	if len(order) == 0 {
		fmt.Fprintln(tw, "(no signups)")
	}
	return tw.Flush()
}
