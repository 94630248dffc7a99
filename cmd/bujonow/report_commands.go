package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bujonow/internal/journal"
)

func newWeeklyCommand(ctx *commandContext) *cobra.Command {
	var endFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Summarize the last seven days of entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			summary, err := service.WeeklySummary(cmd.Context(), ctx.user(), endFlag)
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, summary.Summary)
			if summary.EmotionTrend != "" {
				fmt.Fprintf(out, "\nEmotion trend: %s\n", summary.EmotionTrend)
			}
			if len(summary.Recommendations) > 0 {
				fmt.Fprintln(out, "\nRecommendations:")
				for _, rec := range summary.Recommendations {
					fmt.Fprintf(out, "  - %s\n", rec)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endFlag, "end", "", "Final day of the week (YYYY-MM-DD, defaults to today)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the summary as JSON")
	return cmd
}

func newMoodCommand(ctx *commandContext) *cobra.Command {
	var startFlag, endFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Show the mood trend and emotion distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			var start, end *time.Time
			if startFlag != "" {
				parsed, err := journal.ParseDate(startFlag)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				start = &parsed
			}
			if endFlag != "" {
				parsed, err := journal.ParseDate(endFlag)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
				end = &parsed
			}

			trend, distribution, err := service.MoodReport(cmd.Context(), ctx.user(), start, end)
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, map[string]any{
					"trend":        trend,
					"distribution": distribution,
				})
			}
			out := cmd.OutOrStdout()
			if len(trend) == 0 {
				fmt.Fprintln(out, "No analyzed entries in range")
				return nil
			}

			trendRows := make([][]string, 0, len(trend))
			for _, point := range trend {
				trendRows = append(trendRows, []string{
					point.Date,
					emotionLabel(point.Emotion),
					fmt.Sprintf("%.1f", point.Score),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Date", "Emotion", "Score"},
				trendRows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))

			distRows := make([][]string, 0, len(distribution))
			for _, count := range distribution {
				distRows = append(distRows, []string{
					emotionLabel(count.Emotion),
					fmt.Sprintf("%d", count.Count),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Emotion", "Entries"},
				distRows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the report as JSON")
	return cmd
}
