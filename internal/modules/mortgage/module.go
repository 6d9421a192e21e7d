package mortgage

import (
	mortgage_http "github.com/arjunm29/nestfind/internal/modules/mortgage/interfaces/http"
)

// Module represents the Mortgage module
type Module struct {
	handler *mortgage_http.MortgageHandler
}

// NewModule creates and initializes the Mortgage module
func NewModule() *Module {
	return &Module{
		handler: mortgage_http.NewMortgageHandler(),
	}
}

// HTTPHandler returns the HTTP handler for the mortgage module
func (m *Module) HTTPHandler() *mortgage_http.MortgageHandler {
	return m.handler
}
