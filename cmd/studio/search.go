package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/snappy-loop/studio/internal/auth"
	"github.com/snappy-loop/studio/internal/imagesource"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *cliOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find background images on Unsplash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studio, err := loadStudio(cmd, opts)
			if err != nil {
				return err
			}
			res, err := studio.SearchBackgrounds(cmd.Context(), strings.Join(args, " "), count)
			if err != nil {
				return err
			}
			if res.Fallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "image search unavailable, showing sample images:", res.Cause)
			}
			for _, u := range res.URLs {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", imagesource.DefaultCount, "number of results")
	return cmd
}

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key [KEY]",
		Short: "Print the bcrypt hash to use as ACCESS_KEY_HASH",
		Long:  "Hashes KEY, or the first line of stdin when KEY is omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read key from stdin: %w", err)
				}
				key = line
			}
			hash, err := auth.HashAccessKey(strings.TrimSpace(key))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
