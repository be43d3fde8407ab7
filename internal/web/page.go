package web

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/a-h/templ"
)

// OverviewData is the view model of the overview page.
type OverviewData struct {
	Master  *core.MasterTable
	Reports []core.FilterReport
	Groups  []OverviewGroup
}

// OverviewGroup lists the subsets of one group.
type OverviewGroup struct {
	Name string
	Rows []OverviewRow
}

// OverviewRow is one subset line on the overview page.
type OverviewRow struct {
	Info      core.SubsetInfo
	Retained  int
	Available bool
	Problem   string
}

// Overview renders the master table summary and subset sizes.
func Overview(data OverviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		e := templ.EscapeString

		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<title>exopop</title>`)
		b.WriteString(`<style>body{font-family:sans-serif;margin:2rem}td,th{padding:.2rem .8rem;text-align:left}.swatch{display:inline-block;width:.8rem;height:.8rem;margin-right:.4rem}</style>`)
		b.WriteString(`</head><body>`)

		b.WriteString(`<h1>Transiting exoplanets</h1>`)
		fmt.Fprintf(&b, `<p>Snapshot <code>%s</code> from <code>%s</code>: %d planets, loaded %s.</p>`,
			e(data.Master.ID.String()), e(data.Master.Source), data.Master.Len(),
			e(data.Master.LoadedAt.Format("2006-01-02 15:04 MST")))

		if len(data.Reports) > 0 {
			b.WriteString(`<h2>Filters</h2><table><tr><th>stage</th><th>before</th><th>after</th><th>removed</th></tr>`)
			for _, rep := range data.Reports {
				fmt.Fprintf(&b, `<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
					e(rep.Stage), rep.Before, rep.After, rep.Removed)
			}
			b.WriteString(`</table>`)
		}

		for _, g := range data.Groups {
			fmt.Fprintf(&b, `<h2>%s</h2><table><tr><th>subset</th><th>label</th><th>planets</th></tr>`, e(g.Name))
			for _, row := range g.Rows {
				count := e(row.Problem)
				if row.Available {
					count = fmt.Sprintf(`<a href="/api/subsets/%s">%d</a>`, e(row.Info.Key), row.Retained)
				}
				fmt.Fprintf(&b, `<tr><td><span class="swatch" style="background:%s"></span>%s</td><td>%s</td><td>%s</td></tr>`,
					e(row.Info.Color), e(row.Info.Key), e(row.Info.Label), count)
			}
			b.WriteString(`</table>`)
		}

		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
