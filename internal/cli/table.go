package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ytshorts/internal/types"
)

func renderArtifacts(artifacts []types.Artifact) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "End", "File"})

	for _, a := range artifacts {
		tw.AppendRow(table.Row{
			a.Index,
			fmt.Sprintf("%.2fs", a.Segment.Start.Seconds()),
			fmt.Sprintf("%.2fs", a.Segment.End.Seconds()),
			a.Path,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
