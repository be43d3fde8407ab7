package web

import (
	"net/http"

	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// handleOverview renders the subset overview page.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	master, err := s.service.Population(ctx, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := OverviewData{Master: master, Reports: s.service.Reports()}
	for _, group := range core.Groups() {
		g := OverviewGroup{Name: group}
		for _, def := range core.ByGroup(group) {
			row := OverviewRow{Info: def.Info}
			if sub, err := s.service.Subset(ctx, def.Info.Key, false); err == nil {
				row.Retained = sub.Retained
				row.Available = true
			} else {
				row.Problem = core.MapError(err).Message
			}
			g.Rows = append(g.Rows, row)
		}
		data.Groups = append(data.Groups, g)
	}

	templ.Handler(Overview(data)).ServeHTTP(w, r)
}

// handleHealth reports liveness. It never triggers a build.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// handlePlanets returns the master table, or the rows matching ?highlight=.
func (s *Server) handlePlanets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		table *core.MasterTable
		err   error
	)
	if needle := r.URL.Query().Get("highlight"); needle != "" {
		table, err = s.service.Highlight(ctx, needle)
	} else {
		table, err = s.service.Population(ctx, false)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, table)
}

// handleReports returns the filter reports of the last build.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Population(r.Context(), false); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, s.service.Reports())
}

// handleListSubsets returns all subsets organized by group.
func (s *Server) handleListSubsets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.ListSubsetsByGroup())
}

// handleSubset returns one subset with its rows.
func (s *Server) handleSubset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	sub, err := s.service.Subset(r.Context(), key, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, sub)
}

// handleSubsetStats returns column statistics for a subset. Without
// ?column= every numeric column is summarized. The key "standard" means the
// master table.
func (s *Server) handleSubsetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")

	columns := core.NumericColumns()
	if column := r.URL.Query().Get("column"); column != "" {
		columns = []string{column}
	}

	stats := make([]core.ColumnStats, 0, len(columns))
	for _, column := range columns {
		cs, err := s.service.Stats(ctx, key, column)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		stats = append(stats, cs)
	}

	writeJSON(w, r, stats)
}
