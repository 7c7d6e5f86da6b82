package app

import (
	"github.com/gorilla/mux"
	"github.com/orario/orario/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Business
	r.HandleFunc("/api/business", deps.BusinessHandler.Create).Methods("POST")
	r.HandleFunc("/api/business/current", deps.BusinessHandler.Current).Methods("GET")

	// Working hours
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.Get).Methods("GET")
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.Set).Methods("PUT")

	// Service catalog
	r.HandleFunc("/api/service", deps.CatalogHandler.List).Methods("GET")
	r.HandleFunc("/api/service", deps.CatalogHandler.Add).Methods("POST")
	r.HandleFunc("/api/service/{id}", deps.CatalogHandler.Update).Methods("PUT")
	r.HandleFunc("/api/service/{id}", deps.CatalogHandler.Delete).Methods("DELETE")

	// Availability and booking
	r.HandleFunc("/api/availability", deps.AvailabilityHandler.GetSlots).Queries("serviceId", "{serviceId}", "date", "{date}").Methods("GET")
	r.HandleFunc("/api/appointment", deps.AvailabilityHandler.Book).Methods("POST")
	r.HandleFunc("/api/appointment", deps.BookingHandler.ListForDate).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/appointment/{id}/status", deps.BookingHandler.UpdateStatus).Methods("PATCH")
	r.HandleFunc("/api/appointment/{id}", deps.BookingHandler.Cancel).Methods("DELETE")

	// CRM
	r.HandleFunc("/api/crm/client", deps.CrmHandler.CreateClient).Methods("POST")
	r.HandleFunc("/api/crm/client", deps.CrmHandler.ListClients).Methods("GET")
	r.HandleFunc("/api/crm/client/{clientId}/timeline", deps.CrmHandler.GetTimeline).Methods("GET")

	// Dashboard
	r.HandleFunc("/api/dashboard/summary", deps.DashboardHandler.Summary).Methods("GET")
	r.HandleFunc("/api/dashboard/stream", deps.DashboardHandler.Stream).Methods("GET")
}
