package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/orario/orario/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ServiceDTO struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int    `json:"priceCents,omitempty"`
	Mode            string `json:"mode,omitempty"`
}

type Handler struct {
	catalogService CatalogService
}

func NewHandler(catalogService CatalogService) *Handler {
	return &Handler{catalogService: catalogService}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new service")

	var dto ServiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}

	created, err := h.catalogService.Add(r.Context(), fromDTO(dto))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.List(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	dtos := make([]ServiceDTO, 0, len(services))
	for _, s := range services {
		dtos = append(dtos, toDTO(s))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	serviceId, err := pathId(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}

	var dto ServiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}
	if dto.ID != 0 && dto.ID != serviceId {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, "service id in body does not match path")
		return
	}
	service := fromDTO(dto)
	service.ID = serviceId

	ok, err := h.catalogService.Update(r.Context(), service)
	if err != nil && !errors.Is(err, ErrServiceNotFound) {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, rest.CodeServiceNotFound, "service not found")
		return
	}

	rest.WriteJSON(w, http.StatusOK, toDTO(service))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	serviceId, err := pathId(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.CodeBadRequest, err.Error())
		return
	}
	detach := r.URL.Query().Has("detach")

	err = h.catalogService.Delete(r.Context(), serviceId, detach)
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceInUse):
			rest.WriteError(w, http.StatusConflict, rest.CodeServiceInUse, err.Error())
		case errors.Is(err, ErrServiceNotFound):
			rest.WriteError(w, http.StatusNotFound, rest.CodeServiceNotFound, "service not found")
		default:
			rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, errors.New("invalid service id in path")
	}
	return id, nil
}

func toDTO(s Service) ServiceDTO {
	return ServiceDTO{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Mode:            string(s.Mode),
	}
}

func fromDTO(dto ServiceDTO) Service {
	return Service{
		ID:              dto.ID,
		Name:            dto.Name,
		DurationMinutes: dto.DurationMinutes,
		PriceCents:      dto.PriceCents,
		Mode:            Mode(dto.Mode),
	}
}
