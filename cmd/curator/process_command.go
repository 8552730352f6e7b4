package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/media"
	"curator/internal/processor"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var searchFlag string
	var singleTrack bool
	var keepFiles bool

	cmd := &cobra.Command{
		Use:   "process <path>",
		Short: "Sort one downloaded file or folder into the library",
		Long: "Classifies the path by its parent directory (TV, Movies, Music, Books), " +
			"runs the matching external tool, and moves the result into the media library. " +
			"Archives are extracted first; source files are removed according to the cleanup policy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var forced media.Kind
			if strings.TrimSpace(kindFlag) != "" {
				kind, ok := media.ParseKind(kindFlag)
				if !ok {
					return fmt.Errorf("unknown media kind %q (expected tv, movie, music, or audiobook)", kindFlag)
				}
				forced = kind
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			proc, err := processor.FromConfig(cfg, logger)
			if err != nil {
				return err
			}

			outcome, err := proc.Run(cmd.Context(), path, processor.RunOptions{
				Kind:           forced,
				SearchOverride: searchFlag,
				SingleTrack:    singleTrack,
				KeepFiles:      keepFiles,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderOutcomeTable(outcome))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Force the media kind (tv, movie, music, audiobook)")
	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Override the book metadata search query (audiobooks)")
	cmd.Flags().BoolVar(&singleTrack, "single-track", false, "Force single-track tagging mode (music)")
	cmd.Flags().BoolVar(&keepFiles, "keep", false, "Keep source files after a successful run")
	return cmd
}
