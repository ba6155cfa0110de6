package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"trainingcal/internal/calendar"
	appLog "trainingcal/internal/log"
)

//go:embed templates/month.html
var templateFS embed.FS

var monthTemplate = template.Must(
	template.New("month.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/month.html"),
)

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type monthPage struct {
	View     calendar.MonthView
	Weekdays []string
	Weeks    [][]calendar.DayCell
}

// handleCalendarPage renders the month view as HTML. The root element
// carries data-ready="true" so headless captures know rendering is done.
//
// GET /calendar?date=2024-03-15
func (s *Server) handleCalendarPage(w http.ResponseWriter, r *http.Request) {
	anchor, err := s.monthAnchor(r)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	snap := s.store.Snapshot()
	if snap == nil {
		http.Error(w, "catalog not loaded", http.StatusServiceUnavailable)
		return
	}

	view := calendar.BuildMonthView(anchor, s.today(), snap.Index, calendar.Options{MaxPerCell: s.cfg.MaxPerCell})
	page := monthPage{View: view, Weekdays: weekdayLabels}
	for i := 0; i < len(view.Cells); i += 7 {
		page.Weeks = append(page.Weeks, view.Cells[i:i+7])
	}

	var buf bytes.Buffer
	if err := monthTemplate.Execute(&buf, page); err != nil {
		appLog.Error("month template failed", err, "anchor", view.Label)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
