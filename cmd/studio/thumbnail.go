package main

import (
	"fmt"
	"os"

	"github.com/snappy-loop/studio/internal/models"
	"github.com/snappy-loop/studio/internal/services"
	"github.com/spf13/cobra"
)

// thumbnailFlags binds the ThumbnailSpec fields shared by thumbnail and advice.
type thumbnailFlags struct {
	spec     models.ThumbnailSpec
	style    string
	scheme   string
	position string
}

func (t *thumbnailFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&t.spec.Subtitle, "subtitle", "", "optional subtitle")
	f.StringVar(&t.style, "style", string(models.ThumbModernBold), "visual style")
	f.StringVar(&t.scheme, "scheme", string(models.ColorSchemes[0]), "color scheme")
	f.StringVar(&t.position, "position", string(models.PositionCenter), "title position: Top, Center or Bottom")
	f.BoolVar(&t.spec.IncludeBorder, "border", false, "draw an accent border")
	f.StringVar(&t.spec.Emoji, "emoji", "", "emoji prefixed to the title")
}

func (t *thumbnailFlags) build(title string) (models.ThumbnailSpec, error) {
	spec := t.spec
	spec.Title = title
	spec.Style = models.ThumbnailStyle(t.style)
	spec.ColorScheme = models.ColorScheme(t.scheme)
	spec.TextPosition = models.TextPosition(t.position)
	return spec, spec.Validate()
}

func newThumbnailCmd(opts *cliOptions) *cobra.Command {
	var (
		tf       thumbnailFlags
		image    string
		imageURL string
	)
	cmd := &cobra.Command{
		Use:   "thumbnail TITLE",
		Short: "Render a 1280x720 thumbnail PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := tf.build(args[0])
			if err != nil {
				return err
			}
			req := services.ThumbnailRequest{Spec: spec, BackgroundURL: imageURL}
			if image != "" {
				if req.Background, err = os.ReadFile(image); err != nil {
					return fmt.Errorf("read background: %w", err)
				}
			}

			studio, err := loadStudio(cmd, opts)
			if err != nil {
				return err
			}
			res, err := studio.CreateThumbnail(cmd.Context(), req)
			if err != nil {
				return err
			}
			if res.Degraded {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: used plain fallback thumbnail:", res.Warning)
			}
			path, err := writeOutput(opts, res.FileName, res.PNG)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "saved", path)
			if res.Artifact != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "download", res.Artifact.URL)
			}
			return nil
		},
	}
	tf.bind(cmd)
	cmd.Flags().Int64Var(&tf.spec.Seed, "seed", 0, "layout seed for Vibrant & Colorful (0 = random)")
	cmd.Flags().StringVar(&image, "image", "", "background image file")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "background image URL")
	cmd.MarkFlagsMutuallyExclusive("image", "image-url")
	cmd.MarkFlagsOneRequired("image", "image-url")
	return cmd
}

func newAdviceCmd(opts *cliOptions) *cobra.Command {
	var tf thumbnailFlags
	cmd := &cobra.Command{
		Use:   "advice TITLE",
		Short: "Ask for thumbnail improvement suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := tf.build(args[0])
			if err != nil {
				return err
			}
			studio, err := loadStudio(cmd, opts)
			if err != nil {
				return err
			}
			advice, err := studio.SuggestThumbnailImprovements(cmd.Context(), spec, credentialsFromEnv())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), advice)
			return nil
		},
	}
	tf.bind(cmd)
	return cmd
}
