package services

// ServiceContainer holds instances of all the application services.
// Handlers receive this and pick the interfaces they need.
type ServiceContainer struct {
	Account   AccountService
	Posting   PostingService
	Period    PeriodService
	Fx        FxService
	Reporting ReportingService
}
