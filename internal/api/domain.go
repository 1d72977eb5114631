package api

import (
	"github.com/jtgreer/vigil/internal/analyses"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Analyses analyses.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Classifier,
		runtime.Logger,
		runtime.Pagination,
		runtime.BasePath,
	)

	return &Domain{
		Analyses: analysesSystem,
	}
}
