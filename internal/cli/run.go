package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ytshorts/internal/pipeline"
)

func run(cmd *cobra.Command) error {
	url, _ := cmd.Flags().GetString("url")
	segments, _ := cmd.Flags().GetString("segments")
	aspect, _ := cmd.Flags().GetString("aspect")
	resolution, _ := cmd.Flags().GetString("resolution")
	fps, _ := cmd.Flags().GetInt("fps")
	outDir, _ := cmd.Flags().GetString("output")
	keep, _ := cmd.Flags().GetBool("keep")

	workDir, err := os.MkdirTemp("", "ytshorts-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		URL:        url,
		Segments:   segments,
		Aspect:     aspect,
		Resolution: resolution,
		FPS:        fps,
		OutDir:     outDir,
		KeepSource: keep,
		WorkDir:    workDir,
		YtdlpPath:  os.Getenv("YTSHORTS_YTDLP"),
		Logf: func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		},
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		cfg.PromptSegments = promptSegments(cmd.OutOrStdout(), os.Stdin)
	}

	res, err := pipeline.Run(ctx, cfg)
	if errors.Is(err, pipeline.ErrNoValidSegments) {
		return errors.New("no valid segments in spec")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), renderArtifacts(res.Artifacts))
	for _, a := range res.Artifacts {
		fmt.Fprintln(cmd.OutOrStdout(), a.Path)
	}
	return nil
}

// promptSegments reports the probed duration and reads a spec line from
// in. Wired only when stdin is a terminal.
func promptSegments(out io.Writer, in io.Reader) func(time.Duration) (string, error) {
	return func(duration time.Duration) (string, error) {
		fmt.Fprintf(out, "Duration: %ss\n", strconv.FormatFloat(duration.Seconds(), 'f', 2, 64))
		fmt.Fprintln(out, "Enter segments, e.g. 0:10,30:45")
		fmt.Fprint(out, "Segments: ")
		sc := bufio.NewScanner(in)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
}
