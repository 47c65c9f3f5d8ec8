// Package billing implements the patient billing lifecycle: the status state
// machine, the consumption ledger and the invoice generator. The engine is
// stateless between invocations; every lifecycle action reads the patient
// fresh from storage and commits its mutations as one atomic unit of work.
package billing

import (
	"context"
	"time"

	"facturacion-backend/models"
)

type Engine struct {
	repo    Repository
	catalog CatalogLookup
	clients ClientDirectory
	now     func() time.Time
}

func NewEngine(repo Repository, catalog CatalogLookup, clients ClientDirectory) *Engine {
	return &Engine{
		repo:    repo,
		catalog: catalog,
		clients: clients,
		now:     time.Now,
	}
}

// DischargePatient ends the patient's admitted period (internado -> alta) and
// records the discharge timestamp.
func (e *Engine) DischargePatient(ctx context.Context, pacienteID uint) (*models.Paciente, error) {
	var out *models.Paciente
	err := e.repo.WithTransaction(ctx, func(r Repository) error {
		p, err := r.GetPatient(ctx, pacienteID)
		if err != nil {
			return err
		}
		at := e.now()
		if err := stateFor(p.Estado).discharge(p, at); err != nil {
			return err
		}
		if err := r.UpdatePatientStatus(ctx, p.ID, models.EstadoInternado, models.EstadoAlta, &at); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, opFailed("discharge patient", err)
	}
	return out, nil
}
