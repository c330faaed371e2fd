package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/creativedev/portfolio/internal/imagepipe"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	if err := newRootCmd(log).Execute(); err != nil {
		log.Error().Err(err).Msg("image processing failed")
		os.Exit(1)
	}
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	opts := imagepipe.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "optimize-images [file...]",
		Short: "Resize and re-encode project screenshots for the web",
		Long: `Reads each source image, scales it to cover the target frame,
crops the overflow from the centre and writes it as JPEG.
Missing sources are skipped with a warning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Files = args
			}
			rep, err := imagepipe.Run(cmd.Context(), opts, log)
			if err != nil {
				return err
			}
			log.Info().Int("processed", len(rep.Processed)).Int("skipped", len(rep.Skipped)).Msg("done")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.SourceDir, "src", opts.SourceDir, "directory holding the source images")
	f.StringVar(&opts.OutputDir, "out", opts.OutputDir, "directory to write processed images to")
	f.IntVar(&opts.Width, "width", opts.Width, "output width in pixels")
	f.IntVar(&opts.Height, "height", opts.Height, "output height in pixels")
	f.IntVar(&opts.Quality, "quality", opts.Quality, "JPEG quality (1-100)")
	return cmd
}
