package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "ytshorts",
		Short:        "Download a YouTube video and cut it into ratio-cropped clips",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("url", "", "Source video URL")
	root.Flags().String("segments", "", "Ranges to cut, e.g. 0:10,30:45 or 00:00-00:10,00:30-00:45")
	root.Flags().String("aspect", "9:16", "Target aspect ratio, e.g. 9:16 or 16:9")
	root.Flags().String("resolution", "", "Output resolution, e.g. 1080x1920 (default depends on aspect)")
	root.Flags().Int("fps", 30, "Output frame rate")
	root.Flags().String("output", "output", "Output directory")
	root.Flags().Bool("keep", false, "Keep the downloaded source file in the output directory")
	_ = root.MarkFlagRequired("url")

	root.AddCommand(newServeCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
