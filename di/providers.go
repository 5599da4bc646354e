package di

import (
	appointmentService "agenda/internal/domains/appointment/service"
	businessService "agenda/internal/domains/business/service"
	"agenda/transport/http"
)

// Services exposes the domain services to commands that run without the
// HTTP server.
type Services struct {
	Directory businessService.Directory
	Ledger    appointmentService.Ledger
}

func provideStores(ledger appointmentService.Ledger, directory businessService.Directory) http.Stores {
	return http.Stores{
		Businesses:   directory,
		Appointments: ledger,
	}
}
