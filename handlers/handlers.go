// Package handlers provides the HTTP request handlers for the formulary API
// endpoints. Handlers are thin adapters: they parse and validate request
// parameters, call the search engines against the current catalog snapshot
// and write JSON responses.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rxsaudi/formulary-api/catalog"
	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/interfaces"
	"github.com/rxsaudi/formulary-api/logging"
	"github.com/rxsaudi/formulary-api/metrics"
	"github.com/rxsaudi/formulary-api/search"
)

// Handler implements the API endpoints with injected dependencies.
type Handler struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	healthChecker interfaces.HealthChecker
}

// NewHandler creates a new handler with injected dependencies
func NewHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator, healthChecker interfaces.HealthChecker) *Handler {
	return &Handler{
		dataStore:     dataStore,
		validator:     validator,
		healthChecker: healthChecker,
	}
}

// RespondWithJSON writes a JSON response
func (h *Handler) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *Handler) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// validateQueryTerm applies input validation to a non-empty search term.
// Terms under the three-character effective length are not an error: the
// engines define them as "no results", so ok=false tells the caller to
// short-circuit with an empty payload.
func (h *Handler) validateQueryTerm(w http.ResponseWriter, term string) (proceed bool, empty bool) {
	if term == "" {
		return true, false
	}
	if search.EffectiveLength(term) < 3 {
		return false, true
	}
	if err := h.validator.ValidateSearchInput(term); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false, false
	}
	return true, false
}

// SearchMedicines filters the medicine catalog by the query parameters:
// q, mode, type, priceMin, priceMax, legalStatus, manufacturer (repeatable)
// and sort.
func (h *Handler) SearchMedicines(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	term := strings.TrimSpace(params.Get("q"))

	proceed, empty := h.validateQueryTerm(w, term)
	if empty {
		h.RespondWithJSON(w, http.StatusOK, []entities.Medicine{})
		return
	}
	if !proceed {
		return
	}

	query := search.MedicineQuery{
		Text:          term,
		TextMode:      search.TextMode(params.Get("mode")),
		ProductType:   search.ProductTypeFilter(params.Get("type")),
		PriceMin:      params.Get("priceMin"),
		PriceMax:      params.Get("priceMax"),
		LegalStatus:   params.Get("legalStatus"),
		Manufacturers: params["manufacturer"],
		SortBy:        search.SortBy(params.Get("sort")),
	}

	results := search.FilterMedicines(h.dataStore.GetMedicines(), query)
	h.RespondWithJSON(w, http.StatusOK, results)
}

// FindMedicineByRegister looks a medicine up by its register number.
func (h *Handler) FindMedicineByRegister(w http.ResponseWriter, r *http.Request) {
	registerNumber, err := h.validator.ValidateRegisterNumber(chi.URLParam(r, "registerNumber"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	med, exists := h.dataStore.GetMedicinesByRegister()[registerNumber]
	if !exists {
		h.RespondWithError(w, http.StatusNotFound, "Medicine not found")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, med)
}

// FindAlternatives returns the direct and therapeutic alternatives for the
// medicine identified by register number.
func (h *Handler) FindAlternatives(w http.ResponseWriter, r *http.Request) {
	registerNumber, err := h.validator.ValidateRegisterNumber(chi.URLParam(r, "registerNumber"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	source, exists := h.dataStore.GetMedicinesByRegister()[registerNumber]
	if !exists {
		h.RespondWithError(w, http.StatusNotFound, "Medicine not found")
		return
	}

	alternatives := search.FindAlternatives(h.dataStore.GetMedicines(), source)
	h.RespondWithJSON(w, http.StatusOK, alternatives)
}

// SearchCoverage runs an insurance coverage search. Query parameters: q and
// mode (tradeName, scientificName, indication, icd10Code).
func (h *Handler) SearchCoverage(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	term := strings.TrimSpace(params.Get("q"))

	if term == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing search term")
		return
	}

	proceed, empty := h.validateQueryTerm(w, term)
	if empty {
		h.RespondWithJSON(w, http.StatusOK, entities.CoverageResults{})
		return
	}
	if !proceed {
		return
	}

	mode := search.CoverageMode(params.Get("mode"))
	switch mode {
	case search.CoverageByTradeName, search.CoverageByScientificName,
		search.CoverageByIndication, search.CoverageByIcd10Code:
	case "":
		mode = search.CoverageByTradeName
	default:
		h.RespondWithError(w, http.StatusBadRequest, "Invalid coverage search mode")
		return
	}

	results := search.MatchCoverage(
		search.CoverageQuery{Term: term, Mode: mode},
		h.dataStore.GetFormulary(),
		h.dataStore.GetMedicines(),
	)
	h.RespondWithJSON(w, http.StatusOK, results)
}

// SearchCosmetics filters the cosmetics catalog. Query parameters: q and
// brand (exact match).
func (h *Handler) SearchCosmetics(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	term := strings.TrimSpace(params.Get("q"))

	proceed, empty := h.validateQueryTerm(w, term)
	if empty {
		h.RespondWithJSON(w, http.StatusOK, []entities.Cosmetic{})
		return
	}
	if !proceed {
		return
	}

	results := search.FilterCosmetics(h.dataStore.GetCosmetics(), search.CosmeticQuery{
		Text:  term,
		Brand: params.Get("brand"),
	})
	h.RespondWithJSON(w, http.StatusOK, results)
}

// ServeAllMedicines returns the full medicine catalog
func (h *Handler) ServeAllMedicines(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.dataStore.GetMedicines())
}

// ServePagedMedicines returns one page of the medicine catalog
func (h *Handler) ServePagedMedicines(w http.ResponseWriter, r *http.Request) {
	pageNumber := chi.URLParam(r, "pageNumber")
	page, err := strconv.Atoi(pageNumber)
	if err != nil || page < 1 {
		logging.Warn("Unusual user input", "pageNumber", pageNumber)
		h.RespondWithError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	medicines := h.dataStore.GetMedicines()
	pageSize := 10
	start := (page - 1) * pageSize
	end := start + pageSize

	if start >= len(medicines) {
		h.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}

	if end > len(medicines) {
		end = len(medicines)
	}

	totalItems := len(medicines)
	maxPage := (totalItems + pageSize - 1) / pageSize

	response := map[string]interface{}{
		"data":       medicines[start:end],
		"page":       page,
		"pageSize":   pageSize,
		"totalItems": totalItems,
		"maxPage":    maxPage,
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// ReplaceMedicines replaces the whole medicine catalog from the request
// body. Mutations are whole-collection swaps; there are no partial updates.
func (h *Handler) ReplaceMedicines(w http.ResponseWriter, r *http.Request) {
	var medicines []entities.Medicine
	if err := json.NewDecoder(r.Body).Decode(&medicines); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body: expected an array of medicines")
		return
	}

	if err := h.validator.ValidateDataIntegrity(medicines, h.dataStore.GetFormulary()); err != nil {
		h.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if !h.dataStore.BeginUpdate() {
		h.RespondWithError(w, http.StatusConflict, "A catalog update is already in progress")
		return
	}
	defer h.dataStore.EndUpdate()

	h.dataStore.UpdateData(medicines, h.dataStore.GetCosmetics(), h.dataStore.GetFormulary(),
		catalog.BuildRegisterIndex(medicines))
	metrics.SetCatalogSizes(len(medicines), len(h.dataStore.GetCosmetics()), len(h.dataStore.GetFormulary()))

	logging.Info("Medicine catalog replaced", "count", len(medicines))
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"replaced": len(medicines)})
}

// ReplaceCosmetics replaces the whole cosmetics catalog.
func (h *Handler) ReplaceCosmetics(w http.ResponseWriter, r *http.Request) {
	var cosmetics []entities.Cosmetic
	if err := json.NewDecoder(r.Body).Decode(&cosmetics); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body: expected an array of cosmetics")
		return
	}

	if !h.dataStore.BeginUpdate() {
		h.RespondWithError(w, http.StatusConflict, "A catalog update is already in progress")
		return
	}
	defer h.dataStore.EndUpdate()

	medicines := h.dataStore.GetMedicines()
	h.dataStore.UpdateData(medicines, cosmetics, h.dataStore.GetFormulary(),
		h.dataStore.GetMedicinesByRegister())
	metrics.SetCatalogSizes(len(medicines), len(cosmetics), len(h.dataStore.GetFormulary()))

	logging.Info("Cosmetics catalog replaced", "count", len(cosmetics))
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"replaced": len(cosmetics)})
}

// ReplaceFormulary replaces the whole insurance formulary.
func (h *Handler) ReplaceFormulary(w http.ResponseWriter, r *http.Request) {
	var formulary []entities.InsuranceDrug
	if err := json.NewDecoder(r.Body).Decode(&formulary); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body: expected an array of formulary rows")
		return
	}

	medicines := h.dataStore.GetMedicines()
	if err := h.validator.ValidateDataIntegrity(medicines, formulary); err != nil {
		h.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if !h.dataStore.BeginUpdate() {
		h.RespondWithError(w, http.StatusConflict, "A catalog update is already in progress")
		return
	}
	defer h.dataStore.EndUpdate()

	h.dataStore.UpdateData(medicines, h.dataStore.GetCosmetics(), formulary,
		h.dataStore.GetMedicinesByRegister())
	metrics.SetCatalogSizes(len(medicines), len(h.dataStore.GetCosmetics()), len(formulary))

	logging.Info("Formulary replaced", "count", len(formulary))
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"replaced": len(formulary)})
}

// HealthCheck returns server health information
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, data, httpStatus := h.healthChecker.HealthCheck()

	uptime := time.Since(h.dataStore.GetServerStartTime())

	response := map[string]interface{}{
		"status":         status,
		"uptime_seconds": uptime.Seconds(),
		"data":           data,
		"next_update":    h.healthChecker.CalculateNextUpdate().Format(time.RFC3339),
		"system": map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}
