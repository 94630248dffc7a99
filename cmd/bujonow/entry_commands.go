package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bujonow/internal/journal"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Record a journal entry",
		Long:  "Record a journal entry. Adding to a date that already has an entry prepends the new text to the existing one.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			entry, err := service.RecordText(cmd.Context(), ctx.user(), dateFlag, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved entry for %s", entry.Date)
			if emotion := entry.PrimaryEmotion(); emotion != "" {
				fmt.Fprintf(out, " (%s)", emotionLabel(emotion))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Entry date as YYYY-MM-DD (defaults to today)")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the entry for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			date := ""
			if len(args) > 0 {
				date = args[0]
			}
			entry, err := service.Entry(cmd.Context(), ctx.user(), date)
			if err != nil {
				return err
			}
			if entry == nil {
				if date == "" {
					return errors.New("no entry for today")
				}
				return fmt.Errorf("no entry for %s", date)
			}
			if jsonFlag {
				return writeJSON(cmd, entry)
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the raw entry document as JSON")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var startFlag, endFlag, emotionFlag string
	var tagFlags []string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search entries by date range, tags, and emotion",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			var query journal.SearchQuery
			if startFlag != "" {
				start, err := journal.ParseDate(startFlag)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				query.Start = &start
			}
			if endFlag != "" {
				end, err := journal.ParseDate(endFlag)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
				query.End = &end
			}
			query.Tags = tagFlags
			query.Emotion = emotionFlag

			entries, err := service.Search(cmd.Context(), ctx.user(), query)
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries found")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Date", "Emotion", "Words", "Preview"},
				entryRows(entries),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&tagFlags, "tag", nil, "Require a tag (repeatable)")
	cmd.Flags().StringVar(&emotionFlag, "emotion", "", "Require a primary emotion")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit matching entries as JSON")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every journal entry, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			entries, err := service.ListAll(cmd.Context(), ctx.user())
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Journal is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Date", "Emotion", "Words", "Preview"},
				entryRows(entries),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d entries\n", len(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit all entries as JSON")
	return cmd
}
