package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scholarsync/internal/analytics"
)

// newStatsCommand creates the stats command
func (r *RootCommand) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [daily|weekly|monthly]",
		Short: "Show study hours per time bucket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeframe := analytics.TimeframeDaily
			if len(args) == 1 {
				timeframe = parseTimeframe(args[0])
				if !timeframe.IsValid() {
					return fmt.Errorf("unknown timeframe %q (expected daily, weekly, or monthly)", args[0])
				}
			}

			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			points := session.GetStudyData(timeframe)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tHOURS")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%.1f\n", p.Label, p.Hours)
			}
			return w.Flush()
		},
	}
}

// parseTimeframe maps a case-insensitive argument to a timeframe
func parseTimeframe(arg string) analytics.Timeframe {
	switch strings.ToLower(arg) {
	case "daily":
		return analytics.TimeframeDaily
	case "weekly":
		return analytics.TimeframeWeekly
	case "monthly":
		return analytics.TimeframeMonthly
	}
	return analytics.Timeframe(arg)
}
