package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/usecase"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// accountHeader carries the stable account id from the auth provider.
// An empty or absent value selects the device-local session.
const accountHeader = "X-Account-Id"

// Handler serves the REST surface over the session manager.
type Handler struct {
	sessions *usecase.SessionManager
	photos   *usecase.PhotoService
	notify   *usecase.NotifyService
	logger   logger.Logger
}

// NewHandler creates a new REST handler
func NewHandler(sessions *usecase.SessionManager, photos *usecase.PhotoService, notify *usecase.NotifyService, log logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		photos:   photos,
		notify:   notify,
		logger:   log,
	}
}

// Routes registers all /api routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/status", h.getStatus)

	r.Get("/customers", h.listCustomers)
	r.Post("/customers", h.createCustomer)
	r.Put("/customers/{customerID}", h.updateCustomer)
	r.Delete("/customers/{customerID}", h.deleteCustomer)

	r.Get("/dogs", h.listDogs)
	r.Post("/dogs", h.createDog)
	r.Put("/dogs/{dogID}", h.updateDog)
	r.Delete("/dogs/{dogID}", h.deleteDog)
	r.Put("/dogs/{dogID}/photo", h.uploadDogPhoto)
	r.Get("/dogs/{dogID}/photo", h.downloadDogPhoto)
	r.Post("/dogs/{dogID}/pickup-message", h.sendPickupMessage)

	r.Get("/schedules/{weekKey}", h.getWeek)
	r.Put("/schedules/{weekKey}", h.saveWeek)
	r.Post("/schedules/{weekKey}/copy", h.copyWeek)

	r.Get("/attendance/{dateKey}", h.getDay)
	r.Post("/attendance/{dateKey}/{dogID}/check-in", h.checkIn)
	r.Delete("/attendance/{dateKey}/{dogID}/check-in", h.undoCheckIn)
	r.Post("/attendance/{dateKey}/{dogID}/check-out", h.checkOut)
	r.Delete("/attendance/{dateKey}/{dogID}/check-out", h.undoCheckOut)

	r.Get("/import", h.getImportOffer)
	r.Post("/import/accept", h.acceptImport)
	r.Post("/import/decline", h.declineImport)

	r.Get("/revenue", h.getRevenue)
	r.Get("/revenue/export", h.exportRevenue)
}

func (h *Handler) session(r *http.Request) (*usecase.Session, error) {
	return h.sessions.Session(r.Context(), r.Header.Get(accountHeader))
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"remote":   sess.RemoteActive(),
		"revision": sess.Gateway().Revision(),
	})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, sess.Gateway().Customers())
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var customer entity.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if customer.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	customer.ID = utils.NewID()
	customer.CreatedAt = time.Now()

	if err := sess.Gateway().AddCustomer(r.Context(), customer); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "customerID")
	if _, ok := sess.Gateway().Snapshot().CustomerByID(id); !ok {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}

	var customer entity.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	customer.ID = id

	if err := sess.Gateway().UpdateCustomer(r.Context(), id, customer); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Dogs referencing the customer go in the same write; the document
	// never holds a dangling reference.
	if err := sess.Gateway().RemoveCustomerAndDogs(r.Context(), chi.URLParam(r, "customerID")); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDogs(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, sess.Gateway().Dogs())
}

func (h *Handler) createDog(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var dog entity.Dog
	if err := json.NewDecoder(r.Body).Decode(&dog); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if dog.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if dog.DailyPrice < 0 {
		http.Error(w, "dailyPrice must not be negative", http.StatusBadRequest)
		return
	}
	if dog.HasLegacyOwner() {
		http.Error(w, "ownerName/ownerPhone are no longer accepted, use customerId", http.StatusBadRequest)
		return
	}

	dog.ID = utils.NewID()
	dog.CreatedAt = time.Now()

	if err := sess.Gateway().AddDog(r.Context(), dog); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusCreated, dog)
}

func (h *Handler) updateDog(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "dogID")
	if _, ok := sess.Gateway().Snapshot().DogByID(id); !ok {
		http.Error(w, "dog not found", http.StatusNotFound)
		return
	}

	var dog entity.Dog
	if err := json.NewDecoder(r.Body).Decode(&dog); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if dog.DailyPrice < 0 {
		http.Error(w, "dailyPrice must not be negative", http.StatusBadRequest)
		return
	}
	if dog.HasLegacyOwner() {
		http.Error(w, "ownerName/ownerPhone are no longer accepted, use customerId", http.StatusBadRequest)
		return
	}
	dog.ID = id

	if err := sess.Gateway().UpdateDog(r.Context(), id, dog); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, dog)
}

func (h *Handler) deleteDog(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.Gateway().RemoveDog(r.Context(), chi.URLParam(r, "dogID")); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadDogPhoto(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !sess.RemoteActive() {
		http.Error(w, "photo upload requires an account", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		http.Error(w, "empty photo body", http.StatusBadRequest)
		return
	}

	url, err := h.photos.UploadDogPhoto(r.Context(), sess.Gateway(), sess.AccountID(), chi.URLParam(r, "dogID"), data, r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"photoUrl": url})
}

func (h *Handler) downloadDogPhoto(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !sess.RemoteActive() {
		http.Error(w, "photos require an account", http.StatusBadRequest)
		return
	}

	data, contentType, err := h.photos.DownloadDogPhoto(r.Context(), sess.AccountID(), chi.URLParam(r, "dogID"))
	if err != nil {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) sendPickupMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	weekKey := r.URL.Query().Get("week")
	if weekKey == "" {
		weekKey = utils.WeekKey(time.Now())
	}

	if err := h.notify.NotifyPickup(r.Context(), sess.Gateway(), weekKey, chi.URLParam(r, "dogID")); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) getWeek(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	week := sess.Gateway().Schedules()[chi.URLParam(r, "weekKey")]
	if week == nil {
		week = entity.WeekSchedule{}
	}
	respondJSON(w, http.StatusOK, week)
}

func (h *Handler) saveWeek(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var draft entity.WeekSchedule
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	for _, plan := range draft {
		for _, day := range plan.Days {
			if !utils.IsWeekday(day) {
				http.Error(w, "unknown weekday: "+day, http.StatusBadRequest)
				return
			}
		}
	}

	if err := sess.Gateway().SaveWeek(r.Context(), chi.URLParam(r, "weekKey"), draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) copyWeek(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var req struct {
		FromWeek string `json:"fromWeek"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FromWeek == "" {
		http.Error(w, "fromWeek is required", http.StatusBadRequest)
		return
	}

	if err := sess.Gateway().CopyWeek(r.Context(), req.FromWeek, chi.URLParam(r, "weekKey")); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDay(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	day := sess.Gateway().Attendance()[chi.URLParam(r, "dateKey")]
	if day == nil {
		day = entity.DayAttendance{}
	}
	respondJSON(w, http.StatusOK, day)
}

// clockFromBody reads an optional {"time": "HH:MM"} body, defaulting to now.
func clockFromBody(r *http.Request) string {
	var req struct {
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Time != "" {
		return req.Time
	}
	return utils.ClockTime(time.Now())
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.Gateway().CheckIn(r.Context(), chi.URLParam(r, "dateKey"), chi.URLParam(r, "dogID"), clockFromBody(r)); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) undoCheckIn(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.Gateway().UndoCheckIn(r.Context(), chi.URLParam(r, "dateKey"), chi.URLParam(r, "dogID")); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkOut(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.Gateway().CheckOut(r.Context(), chi.URLParam(r, "dateKey"), chi.URLParam(r, "dogID"), clockFromBody(r)); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) undoCheckOut(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.Gateway().UndoCheckOut(r.Context(), chi.URLParam(r, "dateKey"), chi.URLParam(r, "dogID")); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getImportOffer(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"offered": sess.ImportOffered(r.Context())})
}

func (h *Handler) acceptImport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sess.AcceptImport(r.Context()); err != nil {
		if errors.Is(err, usecase.ErrImportUnavailable) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) declineImport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sess.DeclineImport()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getRevenue(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "end must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, usecase.IncomeBetween(sess.Gateway().Snapshot(), start, end))
}

func (h *Handler) exportRevenue(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	month, err := time.Parse("2006-01", r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}

	csvData, err := usecase.MonthlyAttendanceCSV(sess.Gateway().Snapshot(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=attendance.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvData))
}
