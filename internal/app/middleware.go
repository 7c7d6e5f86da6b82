package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/orario/orario/internal/config"
	"github.com/orario/orario/internal/rest"
	"github.com/orario/orario/pkg/business"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Business-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			businessIdHeader := req.Header.Get("X-Business-Id")
			ctx := req.Context()

			if businessIdHeader != "" {
				b, err := deps.BusinessService.GetByUid(ctx, businessIdHeader)
				if err != nil {
					if errors.Is(err, business.ErrNoBusiness) {
						log.Debugf("business not found: %s", businessIdHeader)
						rest.WriteError(w, http.StatusForbidden, rest.CodeBusinessNotFound, "business not found")
						return
					}
					log.Errorf("failed to get business: %v", err)
					rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
					return
				}
				log.Debugf("business found: %s", b.Uid)
				ctx = business.WithBusiness(ctx, b)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
