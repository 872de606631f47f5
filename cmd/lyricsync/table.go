package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/simonhull/lyricsync/internal/pipeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printOutcomes writes one row per outcome followed by a summary line, and
// returns an error when any file failed.
func printOutcomes(w io.Writer, outcomes []pipeline.Outcome) error {
	headers := []string{"File", "Status", "Step", "Lyrics", "Cover", "Time", "Detail"}
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		name := o.Title
		if o.File != "" {
			name = filepath.Base(o.File)
		}
		if name == "" {
			name = o.Source
		}
		detail := ""
		if o.Err != nil {
			detail = o.Err.Error()
		}
		rows = append(rows, []string{
			name,
			o.Status.String(),
			string(o.Step),
			yesNo(o.Lyrics),
			yesNo(o.Cover),
			o.Duration.Round(time.Millisecond).String(),
			detail,
		})
	}
	fmt.Fprintln(w, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))

	s := pipeline.Summarize(outcomes)
	fmt.Fprintf(w, "%d processed: %d succeeded, %d failed, %d unsupported, %d mismatched, %d skipped\n",
		s.Total, s.Succeeded, s.Failed, s.Unsupported, s.Mismatched, s.Skipped)
	if !s.OK() {
		return fmt.Errorf("%d of %d files could not be tagged", s.Failed+s.Unsupported, s.Total)
	}
	return nil
}
