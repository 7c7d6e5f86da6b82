package business

// Business is the tenant root. Every schedule, service, appointment, and CRM
// record is owned by exactly one business.
type Business struct {
	ID       int
	Uid      string
	Name     string
	Timezone string
}
