package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"pricewatch/models"
	"pricewatch/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Runner executes one monitoring cycle. Satisfied by *monitor.Monitor.
type Runner interface {
	Run() *models.RunReport
}

type Handlers struct {
	watchRepo *repository.WatchRepository
	obsRepo   *repository.ObservationRepository
	runner    Runner
	validate  *validator.Validate
}

func NewHandlers(watchRepo *repository.WatchRepository, obsRepo *repository.ObservationRepository, runner Runner) *Handlers {
	return &Handlers{
		watchRepo: watchRepo,
		obsRepo:   obsRepo,
		runner:    runner,
		validate:  validator.New(),
	}
}

// HealthCheck returns a simple health check response
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "pricewatch",
		"status":  "healthy",
	})
}

// GetPrices returns the most recent observations across all products
func (h *Handlers) GetPrices(w http.ResponseWriter, r *http.Request) {
	observations, err := h.obsRepo.Recent(50)
	if err != nil {
		log.Printf("❌ Failed to get recent prices: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get prices")
		return
	}
	if observations == nil {
		observations = []models.Observation{}
	}
	writeJSON(w, http.StatusOK, observations)
}

// GetHistory returns observations filtered by product, most recent first
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")

	limit := 200
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	observations, err := h.obsRepo.History(product, limit)
	if err != nil {
		log.Printf("❌ Failed to get history: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get history")
		return
	}
	if observations == nil {
		observations = []models.Observation{}
	}
	writeJSON(w, http.StatusOK, observations)
}

// Refresh runs a monitoring cycle synchronously and reports its outcome.
// Key authentication happens in middleware.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	report := h.runner.Run()

	status := "ok"
	if report.Failed() {
		status = "partial"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"message": "Monitoring cycle complete",
		"report":  report,
	})
}

// AddWatchItem adds a new watch item
func (h *Handlers) AddWatchItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddWatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	item, err := h.watchRepo.AddWatchItem(&req)
	if err != nil {
		log.Printf("❌ Failed to add watch item: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add watch item")
		return
	}

	log.Printf("✅ Watching %s across %d sites", item.Name, len(item.URLs))
	writeJSON(w, http.StatusCreated, item)
}

// GetWatchItems returns all active watch items
func (h *Handlers) GetWatchItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.watchRepo.GetWatchItems()
	if err != nil {
		log.Printf("❌ Failed to get watch items: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get watch items")
		return
	}
	if items == nil {
		items = []models.WatchItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// DeleteWatchItem deactivates a watch item
func (h *Handlers) DeleteWatchItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid watch item ID")
		return
	}

	if _, err := h.watchRepo.GetWatchItemByID(id); err != nil {
		writeError(w, http.StatusNotFound, "Watch item not found")
		return
	}

	if err := h.watchRepo.DeleteWatchItem(id); err != nil {
		log.Printf("❌ Failed to delete watch item %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete watch item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
