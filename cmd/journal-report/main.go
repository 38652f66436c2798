// Command journal-report prints the durable order journal with its totals.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Apurer/ramen-kiosk/internal/app/api"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/http/mapper"
	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

func main() {
	asJSON := flag.Bool("json", false, "print the report as JSON")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set; the journal report reads the durable journal only")
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	journal, closeJournal, err := api.OpenJournal(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open order journal: %v", err)
	}
	defer closeJournal()

	view, err := loadView(ctx, journal)
	if err != nil {
		log.Fatalf("failed to read order journal: %v", err)
	}
	if err := writeReport(os.Stdout, view, *asJSON); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
}

func loadView(ctx context.Context, journal ports.OrderJournal) (types.JournalView, error) {
	entries, err := journal.List(ctx)
	if err != nil {
		return types.JournalView{}, err
	}
	summary, err := journal.Summary(ctx)
	if err != nil {
		return types.JournalView{}, err
	}
	return types.JournalView{Entries: entries, Summary: summary}, nil
}

func writeReport(w io.Writer, view types.JournalView, asJSON bool) error {
	report := mapper.FromJournal(view)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tPLACED AT\tORDER\tCALORIES\tCOST")
	for _, e := range report.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", e.Sequence, e.PlacedAt.Format(time.RFC3339), e.Description, e.TotalCalories, e.TotalCost)
	}
	fmt.Fprintf(tw, "\t\t%d orders\t\t%s\n", report.Summary.Orders, report.Summary.Revenue)
	return tw.Flush()
}
