package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/orario/orario/internal/rest"
	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/booking"
	"github.com/orario/orario/pkg/catalog"
	log "github.com/sirupsen/logrus"
)

type SlotsDTO struct {
	Slots []string `json:"slots"`
}

type BookingRequestDTO struct {
	ServiceID int    `json:"serviceId"`
	ClientID  string `json:"clientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type Handler struct {
	availabilityService AvailabilityService
}

func NewHandler(availabilityService AvailabilityService) *Handler {
	return &Handler{availabilityService: availabilityService}
}

func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	serviceId, err := strconv.Atoi(r.URL.Query().Get("serviceId"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "serviceId is required")
		return
	}
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.availabilityService.GetAvailableSlots(r.Context(), serviceId, date)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			rest.WriteError(w, http.StatusNotFound, rest.CodeServiceNotFound, "service not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	dto := SlotsDTO{Slots: make([]string, 0, len(slots))}
	for _, slot := range slots {
		dto.Slots = append(dto.Slots, utils.MinutesToHHMM(slot))
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	log.Debug("Booking a slot")

	var dto BookingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}

	clientId, err := uuid.Parse(dto.ClientID)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "invalid clientId")
		return
	}
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	startMinute, err := utils.HHMMToMinutes(dto.Time)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}

	appointment, err := h.availabilityService.BookSlot(r.Context(), dto.ServiceID, clientId, date, startMinute)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			rest.WriteError(w, http.StatusNotFound, rest.CodeServiceNotFound, "service not found")
		case errors.Is(err, ErrSlotNoLongerAvailable):
			rest.WriteError(w, http.StatusConflict, rest.CodeSlotNotAvailable, "this time was just taken - please choose another")
		case errors.Is(err, booking.ErrConflict):
			rest.WriteError(w, http.StatusConflict, rest.CodeConflict, "this time was just taken - please choose another")
		default:
			rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		}
		return
	}

	rest.WriteJSON(w, http.StatusCreated, booking.AppointmentToDTO(appointment))
}
