package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/client/repositories/history"
	"github.com/dmitrijs2005/swish/internal/progress"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderManifest(w io.Writer, link string, m *models.RemoteManifest) {
	fmt.Fprintf(w, "Link:      %s\n", link)
	fmt.Fprintf(w, "Files:     %d (%s)\n", len(m.Files), progress.HumanBytes(m.TotalSize()))
	fmt.Fprintf(w, "Protected: %s\n\n", yesNo(m.NeedsPassword))

	table := newTable(w, "Name", "Size", "Type", "Expires", "Downloads", "Scan")
	for _, f := range m.Files {
		table.Append([]string{
			f.Name,
			progress.HumanBytes(f.SizeBytes),
			f.MimeType,
			f.ExpiredDate,
			strconv.FormatInt(f.DownloadCounter, 10),
			f.VirusScan,
		})
	}
	table.Render()
}

func renderHistory(w io.Writer, records []history.Record) {
	table := newTable(w, "Uploaded", "Link", "Files", "Size", "Expires", "Protected")
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		table.Append([]string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.ShareLink,
			strings.Join(r.Files, ", "),
			progress.HumanBytes(r.TotalSize),
			r.ExpiresAt.Local().Format("2006-01-02"),
			yesNo(r.PasswordProtected),
		})
	}
	table.Render()
}
