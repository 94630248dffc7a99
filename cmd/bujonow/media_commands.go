package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newVoiceCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "voice <audio-file>",
		Short: "Record a voice journal entry from an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open audio file: %w", err)
			}
			defer file.Close()

			voice, err := service.RecordVoice(cmd.Context(), ctx.user(), dateFlag, filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved voice entry for %s\n", voice.Entry.Date)
			fmt.Fprintf(out, "Transcript: %s\n", voice.Transcript)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Entry date as YYYY-MM-DD (defaults to today)")
	return cmd
}

func newPhotoCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string
	var notesFlag string

	cmd := &cobra.Command{
		Use:   "photo <image-file>",
		Short: "Record a photo journal entry from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.journalService()
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open image file: %w", err)
			}
			defer file.Close()

			photo, err := service.RecordPhoto(cmd.Context(), ctx.user(), dateFlag, filepath.Base(args[0]), file, notesFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved photo entry for %s\n", photo.Entry.Date)
			if photo.Detected != "" {
				fmt.Fprintf(out, "Detected emotion: %s\n", emotionLabel(photo.Detected))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Entry date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Notes to store alongside the photo")
	return cmd
}
