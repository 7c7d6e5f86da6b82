package business

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orario/orario/internal/rest"
	log "github.com/sirupsen/logrus"
)

type BusinessDTO struct {
	Uid      string `json:"uid"`
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new business")

	var dto BusinessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "name is required")
		return
	}

	created, err := h.service.Create(r.Context(), Business{
		Uid:      dto.Uid,
		Name:     dto.Name,
		Timezone: dto.Timezone,
	})
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusCreated, BusinessDTO{
		Uid:      created.Uid,
		Name:     created.Name,
		Timezone: created.Timezone,
	})
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetCurrent(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoBusiness) {
			rest.WriteError(w, http.StatusNotFound, rest.CodeBusinessNotFound, "no business in request context")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusOK, BusinessDTO{
		Uid:      b.Uid,
		Name:     b.Name,
		Timezone: b.Timezone,
	})
}
