package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stock-spike-analyzer/internal/analysis"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var ist = time.FixedZone("IST", 5*3600+30*60)

// Server holds the dependencies of the dashboard handlers
type Server struct {
	cfg      *store.Config
	analyzer interfaces.Analyzer
	pages    map[string]*template.Template
}

// NewServer parses the embedded templates
func NewServer(cfg *store.Config, a interfaces.Analyzer) (*Server, error) {
	pages := make(map[string]*template.Template, 2)
	for _, name := range []string{"dashboard.html", "stock.html"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return &Server{cfg: cfg, analyzer: a, pages: pages}, nil
}

// Handler returns the routed, instrumented dashboard
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, h))
	}

	route("GET /{$}", s.Dashboard)
	route("POST /analyze", s.Analyze)
	route("GET /stock", s.PickStock)
	route("GET /stock/{ticker}", s.Stock)

	route("GET /api/movers", s.GetMovers)
	route("GET /api/stock/{ticker}", s.GetStock)
	route("POST /api/analyze", s.PostAnalyze)
	route("GET /api/history", s.GetHistory)

	route("GET /healthz", s.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	return RequestIDMiddleware(LoggingMiddleware(mux))
}

// HealthCheck always answers 200 while the process is serving
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type moverRow struct {
	types.Movement
	Selected bool
}

type dashboardView struct {
	Days, MinDays, MaxDays int
	TopN                   int
	Report                 *types.MoversReport
	Updated                string
	Gainers, Losers        []moverRow
	Selected               string
	Error                  string
}

func (s *Server) dashboard(r *http.Request, errMsg string) dashboardView {
	v := dashboardView{
		Days:    s.cfg.Movers.DefaultDays,
		MinDays: s.cfg.Movers.MinDays,
		MaxDays: s.cfg.Movers.MaxDays,
		TopN:    s.cfg.Movers.TopN,
		Error:   errMsg,
	}
	if rep, err := s.analyzer.Latest(); err == nil {
		v.Report = rep
		v.Days = rep.Days
		v.Updated = rep.GeneratedAt.In(ist).Format("03:04 PM")
		v.Selected = s.analyzer.Selected()
		v.Gainers = rows(rep.Gainers, v.Selected)
		v.Losers = rows(rep.Losers, v.Selected)
	}
	if d, err := strconv.Atoi(r.FormValue("days")); err == nil {
		v.Days = s.cfg.ClampDays(d)
	}
	return v
}

func rows(ms []types.Movement, selected string) []moverRow {
	out := make([]moverRow, len(ms))
	for i, m := range ms {
		out[i] = moverRow{Movement: m, Selected: m.Ticker == selected}
	}
	return out
}

// Dashboard renders the settings form, market pulse and movers tables
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "dashboard.html", s.dashboard(r, ""))
}

// Analyze refreshes the report from the settings form
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.FormValue("days"))
	if err != nil {
		s.render(w, r, http.StatusBadRequest, "dashboard.html", s.dashboard(r, "❌ Lookback days must be a number."))
		return
	}

	if _, err := s.analyzer.Refresh(r.Context(), days); err != nil {
		logger.ErrorWithErr(r.Context(), "Dashboard refresh failed", err, "days", days)
		s.render(w, r, statusFor(err), "dashboard.html",
			s.dashboard(r, "❌ Unable to fetch movers data. "+err.Error()))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PickStock turns the selector form into a detail URL
func (s *Server) PickStock(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/stock/"+url.PathEscape(ticker), http.StatusSeeOther)
}

type stockView struct {
	Report *types.MoversReport
	Detail *types.StockDetail
	Chart  *chartView
}

// Stock renders the chart, headlines and explanation for one mover
func (s *Server) Stock(w http.ResponseWriter, r *http.Request) {
	rep, err := s.analyzer.Latest()
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	d, err := s.analyzer.Detail(r.Context(), r.PathValue("ticker"), rep.Days)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	s.render(w, r, http.StatusOK, "stock.html", stockView{
		Report: rep,
		Detail: d,
		Chart:  priceChart(d.Series, d.Bounds, d.Movement.ChangePct),
	})
}

// GetMovers returns the latest report as JSON
func (s *Server) GetMovers(w http.ResponseWriter, r *http.Request) {
	rep, err := s.analyzer.Latest()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GetStock returns a mover's detail as JSON. days defaults to the report window.
func (s *Server) GetStock(w http.ResponseWriter, r *http.Request) {
	rep, err := s.analyzer.Latest()
	if err != nil {
		writeError(w, err)
		return
	}
	days := rep.Days
	if v := r.URL.Query().Get("days"); v != "" {
		if days, err = strconv.Atoi(v); err != nil {
			http.Error(w, "Invalid days", http.StatusBadRequest)
			return
		}
	}

	d, err := s.analyzer.Detail(r.Context(), r.PathValue("ticker"), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// PostAnalyze refreshes the report. days defaults to the configured window.
func (s *Server) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	days := s.cfg.Movers.DefaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		var err error
		if days, err = strconv.Atoi(v); err != nil {
			http.Error(w, "Invalid days", http.StatusBadRequest)
			return
		}
	}

	rep, err := s.analyzer.Refresh(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GetHistory lists persisted runs, newest first
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := s.analyzer.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []types.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to render page", err, "page", page)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrNoReport):
		return http.StatusConflict
	case errors.Is(err, analysis.ErrUnknownTicker):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrInvalidDays):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
