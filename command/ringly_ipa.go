package command

import (
	"github.com/ringly/ringlytools"
	"github.com/ringly/ringlytools/internal/iconout"
	"github.com/ringly/ringlytools/internal/ringlyregexp"
	"github.com/ringly/ringlytools/ios"
	"github.com/ringly/ringlytools/native"
	"github.com/ringly/ringlytools/plutil"
	"github.com/ringly/ringlytools/sips"
	"github.com/spf13/cobra"
)

// NewRinglyIPA returns the command which acts
// as the entrypoint for `ringly-ipa`.
func NewRinglyIPA() *cobra.Command {
	var (
		imageOutput string
		plutilPath  string
		sipsPath    string
		inProcess   bool
		cmd         = &cobra.Command{
			Use:   "ringly-ipa IPA...",
			Short: "Process IPA files for Ringly",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx       = cmd.Context()
					log       = ringlytools.LoggerFrom(ctx)
					inspector = &ios.Inspector{
						Converter: plutil.Command(plutilPath),
						Prober:    sips.Command(sipsPath),
						Stdout:    cmd.OutOrStdout(),
					}
				)

				if inProcess {
					inspector.Converter = native.Converter{}
					inspector.Prober = native.Prober{}
				}

				if imageOutput != "" {
					sink, closeSink, err := iconout.Open(ctx, imageOutput)
					if err != nil {
						return err
					}
					defer closeSink()

					inspector.Sink = sink
				}

				for _, ipa := range args {
					if !ringlyregexp.IsIPA(ipa) {
						log.V(1).Info("inspecting file without .ipa extension", "name", ipa)
					}

					if err := inspector.Inspect(ctx, ipa); err != nil {
						return err
					}
				}

				return nil
			},
		}
	)

	cmd.Flags().StringVar(&imageOutput, "imageoutput", "", "Directory or bucket URL to copy each app's largest icon to.")
	cmd.Flags().StringVar(&plutilPath, "plutil", "plutil", "Path to plutil.")
	cmd.Flags().StringVar(&sipsPath, "sips", "sips", "Path to sips.")
	cmd.Flags().BoolVar(&inProcess, "native", false, "Decode Info.plists and images in-process instead of with plutil and sips.")

	return cmd
}
