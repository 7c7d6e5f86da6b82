package catalog

import "errors"

var ErrServiceNotFound = errors.New("service not found")
var ErrServiceInUse = errors.New("service has future appointments")

type Mode string

const (
	ModeAtBusiness Mode = "at_business"
	ModeOnSite     Mode = "on_site"
)

// Service is a bookable offering. DurationMinutes is copied onto every
// appointment at booking time, so editing it here never rewrites history.
type Service struct {
	ID              int
	BusinessID      int
	Name            string
	DurationMinutes int
	PriceCents      int
	Mode            Mode
	Archived        bool
}
