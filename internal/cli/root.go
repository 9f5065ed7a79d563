package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"numerology_fortune_bot/internal/app"
	"numerology_fortune_bot/internal/domain/fortune"
	"numerology_fortune_bot/internal/infra/config"
	"numerology_fortune_bot/internal/infra/fortunetable"
	"numerology_fortune_bot/internal/infra/logger"
	"numerology_fortune_bot/internal/infra/narrator"
)

const dateLayout = "2006-01-02"

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	date      string
	tablePath string
	asJSON    bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:          "fortune <email>",
		Short:        "Numerology fortune for an email address",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCLI()
			if err != nil {
				return err
			}
			logger.InitWithOutput(cfg, cmd.ErrOrStderr())

			date, err := resolveDate(opts.date, cfg.Location, time.Now())
			if err != nil {
				return err
			}

			tablePath := cfg.TablePath
			if cmd.Flags().Changed("table") {
				tablePath = opts.tablePath
			}
			tbl, err := fortunetable.Load(tablePath)
			if err != nil {
				return err
			}

			svc := app.NewFortuneService(tbl, cfg.Location, logger.Component("cli"), narrator.Keywords{})
			res, err := svc.Tell(context.Background(), args[0], date)
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), args[0], date, res)
			}
			writeText(cmd.OutOrStdout(), args[0], date, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&opts.tablePath, "table", "", "fortune table YAML file, defaults to FORTUNE_TABLE_PATH or the built-in table")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	cmd.AddCommand(newTableCmd())
	return cmd
}

// resolveDate parses a YYYY-MM-DD flag in loc, or returns the current day
// in loc when the flag is empty.
func resolveDate(value string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if value == "" {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	d, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}

func writeText(w io.Writer, email string, date time.Time, res *fortune.Result) {
	fmt.Fprintf(w, "Fortune for %s on %s (date number %d)\n", email, date.Format(dateLayout), res.DateNumber)
	for _, r := range res.Readings() {
		fmt.Fprintf(w, "\n%s %s [%d, %s]\n", r.Mark.Emoji(), r.Category.Title(), r.Number, r.Mark)
		if r.Text != "" {
			fmt.Fprintln(w, r.Text)
		}
	}
}

type readingJSON struct {
	Category string `json:"category"`
	Number   int    `json:"number"`
	Mark     string `json:"mark"`
	Text     string `json:"text"`
}

type resultJSON struct {
	Email      string        `json:"email"`
	Date       string        `json:"date"`
	DateNumber int           `json:"date_number"`
	Readings   []readingJSON `json:"readings"`
}

func writeJSON(w io.Writer, email string, date time.Time, res *fortune.Result) error {
	out := resultJSON{
		Email:      email,
		Date:       date.Format(dateLayout),
		DateNumber: res.DateNumber,
	}
	for _, r := range res.Readings() {
		out.Readings = append(out.Readings, readingJSON{
			Category: string(r.Category),
			Number:   r.Number,
			Mark:     string(r.Mark),
			Text:     r.Text,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
