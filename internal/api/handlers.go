package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chartwise/internal/datasource"
	"chartwise/internal/logger"
	"chartwise/internal/state"
	"chartwise/internal/suggest"

	"github.com/go-chi/chi/v5"
)

const (
	MaxFileSize = 100 * 1024 * 1024 // 100MB

	// Rows sampled from a database table for shape inference.
	defaultSampleLimit = 500
	maxSampleLimit     = 5000
)

type Handler struct {
	Log       *logger.Logger
	Suggester *suggest.Suggester
	Store     *state.Store
	UploadDir string
	CurrentDB datasource.Source // Active DB connection
}

func NewHandler(log *logger.Logger, sg *suggest.Suggester, st *state.Store, uploadDir string) *Handler {
	return &Handler{
		Log:       log,
		Suggester: sg,
		Store:     st,
		UploadDir: uploadDir,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	// Suggestion Routes
	r.Post("/api/suggest", h.Suggest)
	r.Post("/api/suggest/batch", h.SuggestBatch)

	// DB Routes
	r.Post("/api/db/connect", h.ConnectDB)
	r.Get("/api/db/tables", h.ListTables)
	r.Post("/api/db/suggest", h.SuggestFromTable)

	// Upload Routes
	r.Post("/api/upload", h.Upload)

	// Chart State Routes
	r.Get("/api/charts/{chartID}/state", h.GetChartState)
	r.Post("/api/charts/{chartID}/apply", h.ApplySuggestion)
	r.Delete("/api/charts/{chartID}", h.DeleteChart)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Suggestions
// ============================================================================

// Suggest runs the engine for a single table shape posted by the client.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table suggest.TableShape `json:"table"`
		State *suggest.State     `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validateState(req.State); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	suggestions, err := h.Suggester.Suggestions(req.Table, req.State)
	if err != nil {
		http.Error(w, fmt.Sprintf("Suggestion engine failed: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeSuggestions(w, suggestions)
}

// SuggestBatch ranks suggestions across several candidate tables, for
// pickers that show the best chart per datasource field combination.
func (h *Handler) SuggestBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tables []suggest.TableShape `json:"tables"`
		State  *suggest.State       `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validateState(req.State); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ranked, err := h.Suggester.RankTables(r.Context(), req.Tables, req.State)
	if err != nil {
		http.Error(w, fmt.Sprintf("Suggestion engine failed: %v", err), http.StatusInternalServerError)
		return
	}
	if ranked == nil {
		ranked = []suggest.RankedSuggestion{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"suggestions": ranked,
		"total":       len(ranked),
	})
}

// ============================================================================
// Database
// ============================================================================

// ConnectDB establishes a database connection
func (h *Handler) ConnectDB(w http.ResponseWriter, r *http.Request) {
	var config datasource.Config
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	config.Normalize()

	// Currently only Postgres supported
	if config.Type != "postgres" {
		http.Error(w, "Only postgres is supported currently", http.StatusBadRequest)
		return
	}

	ds := &datasource.PostgresSource{}
	if err := ds.Connect(config); err != nil {
		http.Error(w, fmt.Sprintf("Failed to connect: %v", err), http.StatusInternalServerError)
		return
	}

	// Close previous if exists
	if h.CurrentDB != nil {
		h.CurrentDB.Close()
	}
	h.CurrentDB = ds

	h.Log.Info("database connected", "host", config.Host, "dbname", config.DBName)
	json.NewEncoder(w).Encode(map[string]string{"status": "connected"})
}

// ListTables returns tables from connected DB
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	if h.CurrentDB == nil {
		http.Error(w, "No database connection", http.StatusBadRequest)
		return
	}

	tables, err := h.CurrentDB.ListTables()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error listing tables: %v", err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"tables": tables})
}

// SuggestFromTable samples a table from the connected database, infers
// its shape and runs the engine against the chart's stored state.
func (h *Handler) SuggestFromTable(w http.ResponseWriter, r *http.Request) {
	if h.CurrentDB == nil {
		http.Error(w, "No database connection", http.StatusBadRequest)
		return
	}

	var req struct {
		TableName string `json:"table_name"`
		ChartID   string `json:"chart_id"`
		LayerID   string `json:"layer_id"`
		Limit     int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.TableName == "" {
		http.Error(w, "table_name is required", http.StatusBadRequest)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSampleLimit
	}
	if limit > maxSampleLimit {
		limit = maxSampleLimit
	}

	sample, err := h.CurrentDB.Sample(req.TableName, limit)
	if err != nil {
		if errors.Is(err, datasource.ErrTableNotFound) {
			http.Error(w, fmt.Sprintf("Table %s not found", req.TableName), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Error fetching data: %v", err), http.StatusInternalServerError)
		return
	}

	h.suggestForSample(w, sample, req.ChartID, req.LayerID)
}

// ============================================================================
// Upload
// ============================================================================

// Upload accepts a CSV file and suggests charts for its inferred shape.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 100MB)
	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Validate file extension
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		http.Error(w, "Only CSV files are allowed", http.StatusBadRequest)
		return
	}

	// Create upload directory
	os.MkdirAll(h.UploadDir, 0755)

	// Save file
	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	filePath := filepath.Join(h.UploadDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	sample, err := datasource.ReadCSV(filePath)
	if err != nil {
		os.Remove(filePath)
		http.Error(w, fmt.Sprintf("Failed to parse CSV: %v", err), http.StatusBadRequest)
		return
	}
	sample.Name = header.Filename

	h.Log.Info("file uploaded", "file", header.Filename, "rows", len(sample.Rows))
	h.suggestForSample(w, sample, r.FormValue("chart_id"), r.FormValue("layer_id"))
}

// suggestForSample is the shared tail of the database and upload flows:
// infer the shape, suggest against stored chart state, remember the
// shape for change detection on the next call.
func (h *Handler) suggestForSample(w http.ResponseWriter, sample *datasource.TableSample, chartID, layerID string) {
	if layerID == "" {
		layerID = "first"
	}

	var prior *suggest.TableShape
	var current *suggest.State
	if chartID != "" {
		prior = h.Store.LastShape(chartID, layerID)
		current = h.Store.GetState(chartID)
	}

	shape := datasource.InferShape(sample, layerID, prior)

	suggestions, err := h.Suggester.Suggestions(shape, current)
	if err != nil {
		http.Error(w, fmt.Sprintf("Suggestion engine failed: %v", err), http.StatusInternalServerError)
		return
	}

	if chartID != "" {
		h.Store.PutShape(chartID, layerID, shape)
	}

	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"table":       shape,
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// ============================================================================
// Chart State
// ============================================================================

func (h *Handler) GetChartState(w http.ResponseWriter, r *http.Request) {
	chartID := chi.URLParam(r, "chartID")

	st := h.Store.GetState(chartID)
	if st == nil {
		http.Error(w, "Chart not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"chart_id": chartID,
		"state":    st,
	})
}

// ApplySuggestion makes a suggestion's configuration the chart's
// current state, so later shape changes reconcile against it.
func (h *Handler) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	chartID := chi.URLParam(r, "chartID")

	var sug suggest.Suggestion
	if err := json.NewDecoder(r.Body).Decode(&sug); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(sug.State.Layers) == 0 {
		http.Error(w, "Suggestion has no layers", http.StatusBadRequest)
		return
	}
	if err := validateState(&sug.State); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	applied := h.Store.Apply(chartID, sug)

	h.Log.Info("suggestion applied", "chart", chartID, "series_type", applied.PreferredSeriesType)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "applied",
		"chart_id": chartID,
		"state":    applied,
	})
}

func (h *Handler) DeleteChart(w http.ResponseWriter, r *http.Request) {
	chartID := chi.URLParam(r, "chartID")

	if !h.Store.Clear(chartID) {
		http.Error(w, "Chart not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}

// ============================================================================
// Helpers
// ============================================================================

func (h *Handler) writeSuggestions(w http.ResponseWriter, suggestions []suggest.Suggestion) {
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// validateState rejects posted states carrying series types the engine
// does not know, so an engine error can only mean a server-side bug.
func validateState(st *suggest.State) error {
	if st == nil {
		return nil
	}
	if st.PreferredSeriesType != "" && !st.PreferredSeriesType.Valid() {
		return fmt.Errorf("unknown series type %q", st.PreferredSeriesType)
	}
	for _, l := range st.Layers {
		if l.SeriesType != "" && !l.SeriesType.Valid() {
			return fmt.Errorf("unknown series type %q in layer %s", l.SeriesType, l.LayerID)
		}
	}
	return nil
}
