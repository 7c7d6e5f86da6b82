package crm

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/orario/orario/internal/rest"
	"github.com/orario/orario/internal/utils"
)

type ClientDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

type TimelineEntryDTO struct {
	AppointmentID string `json:"appointmentId"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

type Handler struct {
	crmService CrmService
}

func NewHandler(crmService CrmService) *Handler {
	return &Handler{crmService: crmService}
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var dto ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(dto.DisplayName) == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "displayName is required")
		return
	}

	client, err := h.crmService.CreateClient(r.Context(), Client{
		DisplayName: strings.TrimSpace(dto.DisplayName),
		Phone:       strings.TrimSpace(dto.Phone),
		Email:       strings.TrimSpace(dto.Email),
	})
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, clientToDTO(client))
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.crmService.ListClients(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	dtos := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, clientToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	clientId, err := uuid.Parse(mux.Vars(r)["clientId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "invalid client id")
		return
	}

	if _, err := h.crmService.GetClient(r.Context(), clientId); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			rest.WriteError(w, http.StatusNotFound, rest.CodeClientNotFound, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	entries, err := h.crmService.GetTimeline(r.Context(), clientId)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	dtos := make([]TimelineEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, TimelineEntryDTO{
			AppointmentID: e.AppointmentID.String(),
			ServiceName:   e.ServiceName,
			Date:          e.Date.Format("2006-01-02"),
			Time:          utils.MinutesToHHMM(e.StartMinute),
			Status:        e.Status,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func clientToDTO(c Client) ClientDTO {
	return ClientDTO{
		ID:          c.ID.String(),
		DisplayName: c.DisplayName,
		Phone:       c.Phone,
		Email:       c.Email,
	}
}
