package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/snappy-loop/studio/internal/markup"
	"github.com/snappy-loop/studio/internal/models"
	"github.com/spf13/cobra"
)

func newScriptCmd(opts *cliOptions) *cobra.Command {
	var (
		req   models.ScriptRequest
		tone  string
		size  string
		use   string
		style string
		printOut bool
		withHTML bool
	)
	cmd := &cobra.Command{
		Use:   "script TOPIC",
		Short: "Generate a video script or outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := models.ParseScriptStyle(style)
			if err != nil {
				return err
			}
			req.Topic = args[0]
			req.Tone = models.Tone(tone)
			req.Length = models.LengthBucket(size)
			req.UseCase = models.UseCase(use)
			req.Style = parsed

			studio, err := loadStudio(cmd, opts)
			if err != nil {
				return err
			}
			res, err := studio.GenerateScript(cmd.Context(), req, credentialsFromEnv())
			if err != nil {
				return err
			}

			if printOut {
				fmt.Fprintln(cmd.OutOrStdout(), res.Script)
			}
			path, err := writeOutput(opts, res.FileName, []byte(res.Script))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "saved", path)
			if withHTML {
				page, err := markup.ScriptToHTML(req.Topic, res.Script)
				if err != nil {
					return err
				}
				htmlName := strings.TrimSuffix(res.FileName, filepath.Ext(res.FileName)) + ".html"
				if path, err = writeOutput(opts, htmlName, []byte(page)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "saved", path)
			}
			if res.Artifact != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "download", res.Artifact.URL)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&tone, "tone", string(models.Tones[0]), "tone of voice")
	f.StringSliceVar(&req.Audience, "audience", []string{"General Audience"}, "target audience (repeatable)")
	f.StringVar(&size, "length", string(models.LengthBuckets[0]), "video length bucket")
	f.StringVar(&req.Language, "language", "English", "script language")
	f.StringVar(&use, "use-case", string(models.UseCases[0]), "video type")
	f.StringVar(&style, "style", string(models.StyleDetailed), "Detailed or Outline")
	f.StringSliceVar(&req.Include, "include", nil, "sections to include (default: all standard sections)")
	f.StringVar(&req.Notes, "notes", "", "extra instructions for the writer")
	f.BoolVar(&printOut, "print", false, "also print the script to stdout")
	f.BoolVar(&withHTML, "html", false, "also save a rendered HTML preview")
	return cmd
}
