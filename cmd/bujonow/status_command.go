package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bujonow/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("User", statusInfo, ctx.user(), colorize))
			fmt.Fprintln(out, renderStatusLine("Analyzer", statusInfo, cfg.Analysis.Provider, colorize))
			fmt.Fprintln(out, renderStatusLine("Transcription", statusInfo, yesNo(cfg.Transcription.Enabled), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Storage", colorize) {
				fmt.Fprintln(out, line)
			}
			printCheck(out, preflight.CheckDirectoryAccess("Users directory", cfg.Paths.UsersDir), colorize)
			if cfg.Paths.UploadsDir != "" {
				printCheck(out, preflight.CheckDirectoryAccess("Uploads directory", cfg.Paths.UploadsDir), colorize)
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Services", colorize) {
				fmt.Fprintln(out, line)
			}
			printCheck(out, preflight.CheckGeminiFromConfig(cfg), colorize)
			printCheck(out, preflight.CheckNtfyFromConfig(cfg), colorize)

			depsStatuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			for _, status := range depsStatuses {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
					detail = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}
			return nil
		},
	}
}

func printCheck(out io.Writer, result preflight.Result, colorize bool) {
	kind := statusError
	if result.Passed {
		kind = statusOK
	}
	fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
}
