package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orario/orario/internal/rest"
	"github.com/orario/orario/internal/utils"
	log "github.com/sirupsen/logrus"
)

type DayWindowDTO struct {
	Weekday int    `json:"weekday"`
	Open    bool   `json:"open"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

type WeeklyScheduleDTO struct {
	Days     []DayWindowDTO `json:"days"`
	Warnings []string       `json:"warnings,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(s, nil))
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	log.Debug("Replacing weekly schedule")

	var dto WeeklyScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}

	s, err := fromDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeInvalidSchedule, err.Error())
		return
	}

	warnings, err := h.service.Set(r.Context(), s)
	if err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			rest.WriteError(w, http.StatusUnprocessableEntity, rest.CodeInvalidSchedule, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusOK, toDTO(s, warnings))
}

func toDTO(s WeeklySchedule, warnings []string) WeeklyScheduleDTO {
	days := make([]DayWindowDTO, 0, len(s))
	for weekday, day := range s {
		dayDTO := DayWindowDTO{Weekday: weekday, Open: day.Open}
		if day.Open {
			dayDTO.Start = utils.MinutesToHHMM(day.OpenMinute)
			dayDTO.End = utils.MinutesToHHMM(day.CloseMinute)
		}
		days = append(days, dayDTO)
	}
	return WeeklyScheduleDTO{Days: days, Warnings: warnings}
}

func fromDTO(dto WeeklyScheduleDTO) (WeeklySchedule, error) {
	var s WeeklySchedule
	for _, day := range dto.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return WeeklySchedule{}, errors.New("weekday must be between 0 and 6")
		}
		if !day.Open {
			continue
		}
		openMinute, err := utils.HHMMToMinutes(day.Start)
		if err != nil {
			return WeeklySchedule{}, err
		}
		closeMinute, err := utils.HHMMToMinutes(day.End)
		if err != nil {
			return WeeklySchedule{}, err
		}
		s[day.Weekday] = DayWindow{Open: true, OpenMinute: openMinute, CloseMinute: closeMinute}
	}
	return s, nil
}
