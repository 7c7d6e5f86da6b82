package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/orario/orario/internal/rest"
	"github.com/orario/orario/internal/utils"
)

type AppointmentDTO struct {
	ID              string `json:"id"`
	ServiceID       int    `json:"serviceId"`
	ClientID        string `json:"clientId"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

type Handler struct {
	bookingService BookingService
}

func NewHandler(bookingService BookingService) *Handler {
	return &Handler{bookingService: bookingService}
}

func (h *Handler) ListForDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "date must be YYYY-MM-DD")
		return
	}

	appointments, err := h.bookingService.ListForDate(r.Context(), date)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	dtos := make([]AppointmentDTO, 0, len(appointments))
	for _, a := range appointments {
		dtos = append(dtos, AppointmentToDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "invalid appointment id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}

	switch Status(body.Status) {
	case StatusConfirmed:
		appointment, err := h.bookingService.Confirm(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				rest.WriteError(w, http.StatusNotFound, rest.CodeAppointmentMissing, err.Error())
				return
			}
			rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
			return
		}
		rest.WriteJSON(w, http.StatusOK, AppointmentToDTO(appointment))
	case StatusCancelled:
		if err := h.cancel(r, id); err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				rest.WriteError(w, http.StatusNotFound, rest.CodeAppointmentMissing, err.Error())
				return
			}
			rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "status must be confirmed or cancelled")
	}
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "invalid appointment id")
		return
	}

	if err := h.cancel(r, id); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			rest.WriteError(w, http.StatusNotFound, rest.CodeAppointmentMissing, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cancel(r *http.Request, id uuid.UUID) error {
	return h.bookingService.Cancel(r.Context(), id)
}

func AppointmentToDTO(a Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              a.ID.String(),
		ServiceID:       a.ServiceID,
		ClientID:        a.ClientID.String(),
		Date:            a.Date.Format("2006-01-02"),
		Time:            utils.MinutesToHHMM(a.StartMinute),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
	}
}
