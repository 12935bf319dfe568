package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grounds-studio/grounds/internal/db"
)

var (
	waitlistStatus string
	waitlistSince  string
	waitlistLimit  int
)

func init() {
	rootCmd.AddCommand(waitlistCmd)
	waitlistCmd.AddCommand(waitlistListCmd)

	waitlistListCmd.Flags().StringVar(&waitlistStatus, "status", "", "filter by delivery status (delivered, failed)")
	waitlistListCmd.Flags().StringVar(&waitlistSince, "since", "", "only signups after this time (RFC3339 or duration like 24h)")
	waitlistListCmd.Flags().IntVar(&waitlistLimit, "limit", 50, "maximum signups to show (0 for all)")
}

var waitlistCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Inspect recorded waitlist signups",
}

var waitlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded signups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		query := db.SignupQuery{Status: waitlistStatus, Limit: waitlistLimit}
		if waitlistSince != "" {
			since, err := parseSince(waitlistSince, time.Now())
			if err != nil {
				return &PreflightError{
					Message:  err.Error(),
					Hint:     "Use an RFC3339 time or a duration such as 24h",
					NextStep: "grounds waitlist list --since 24h",
				}
			}
			query.Since = &since
		}

		ctx := context.Background()
		database, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		signups, err := db.NewSignupRepository(database).List(ctx, query)
		if err != nil {
			return err
		}

		if IsStructuredOutput() {
			if signups == nil {
				signups = []*db.Signup{}
			}
			return WriteOutput(cmd.OutOrStdout(), signups)
		}

		if len(signups) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No signups recorded")
			return err
		}
		rows := make([][]string, 0, len(signups))
		for _, s := range signups {
			rows = append(rows, []string{
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				s.Email,
				s.Status,
				truncate(s.Message, 40),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"SUBMITTED", "EMAIL", "STATUS", "MESSAGE"}, rows)
	},
}

func parseSince(value string, now time.Time) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return now.Add(-d), nil
	}
	return time.Time{}, fmt.Errorf("invalid --since value %q", value)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
