package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "chat <message>...",
		Short: "Talk with the reflection assistant",
		Long:  "Talk with the reflection assistant. The exchange is appended to the day's entry, creating one when the day has none yet.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			reply, err := service.Chat(cmd.Context(), ctx.user(), dateFlag, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Entry date as YYYY-MM-DD (defaults to today)")
	return cmd
}
