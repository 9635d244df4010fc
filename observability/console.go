package observability

import (
	"fmt"
	"io"
	"player-lab/domain"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Banner prints the header of a player process.
func Banner(w io.Writer, colours bool, title, transport string, stats domain.ProcessStats) {
	header := fmt.Sprintf("  ====== %s | %s | pid %d (%s) | rss %.1f MiB (%.1f%%) | cpu %.1f%% ======",
		title, transport, stats.PID, stats.Status, float64(stats.RSS)/(1<<20), stats.RAM, stats.CPU)
	if colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	_, _ = fmt.Fprintln(w, header)
}

// Summary prints one row per player of the session.
func Summary(w io.Writer, report domain.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Player", "Role", "Sent", "Received", "Outcome", "Cause"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(lo.Map(report.Results, func(r domain.Result, _ int) []string {
		cause := ""
		if r.Cause != nil {
			cause = r.Cause.Error()
		}
		return []string{
			r.PlayerID,
			r.Role.String(),
			strconv.Itoa(r.Stats.Sent),
			strconv.Itoa(r.Stats.Received),
			r.Outcome.String(),
			cause,
		}
	}))
	table.SetCaption(true, fmt.Sprintf("session %s, %s, %s", report.SessionID, report.Mode, report.Elapsed.Round(time.Millisecond)))
	table.Render()
}
