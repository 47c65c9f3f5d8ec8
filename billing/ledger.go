package billing

import (
	"context"

	"facturacion-backend/models"
	"facturacion-backend/utils"
)

// LineaInput is one requested consumption line: a quantity plus exactly one
// of servicio_id/producto_id.
type LineaInput struct {
	ServicioID *uint `json:"servicio_id"`
	ProductoID *uint `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

func validateLines(lineas []LineaInput) error {
	if len(lineas) == 0 {
		return ErrEmptyBatch
	}
	for _, l := range lineas {
		if (l.ServicioID == nil) == (l.ProductoID == nil) {
			return ErrAmbiguousLineSelection
		}
		if l.Cantidad <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// CreateBatch records one accrual event (descargo) for an admitted patient.
// Prices and descriptions are resolved from the catalog once, at creation
// time; the batch and all of its lines are persisted atomically.
func (e *Engine) CreateBatch(ctx context.Context, pacienteID uint, lineas []LineaInput) (*models.Descargo, error) {
	// Fail fast, before any mutation.
	if err := validateLines(lineas); err != nil {
		return nil, err
	}

	var created *models.Descargo
	err := e.repo.WithTransaction(ctx, func(r Repository) error {
		p, err := r.GetPatient(ctx, pacienteID)
		if err != nil {
			return err
		}
		if err := stateFor(p.Estado).addConsumption(p); err != nil {
			return err
		}

		d := &models.Descargo{PacienteID: p.ID, Fecha: e.now()}
		var total float64
		for _, l := range lineas {
			item, err := e.catalog.Resolve(ctx, l.ServicioID, l.ProductoID)
			if err != nil {
				return err
			}
			subtotal := utils.Round2(item.PrecioUnitario * float64(l.Cantidad))
			total += subtotal
			d.Lineas = append(d.Lineas, models.LineaDescargo{
				ServicioID:     l.ServicioID,
				ProductoID:     l.ProductoID,
				Cantidad:       l.Cantidad,
				Descripcion:    item.Descripcion,
				PrecioUnitario: item.PrecioUnitario,
				SubtotalSinIVA: subtotal,
			})
		}
		d.Total = utils.Round2(total)

		if err := r.CreateBatch(ctx, d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, opFailed("create descargo", err)
	}
	return created, nil
}

// BatchesForPatient lists a patient's descargos with their lines.
func (e *Engine) BatchesForPatient(ctx context.Context, pacienteID uint) ([]models.Descargo, error) {
	if _, err := e.repo.GetPatient(ctx, pacienteID); err != nil {
		return nil, opFailed("list descargos", err)
	}
	ds, err := e.repo.BatchesForPatient(ctx, pacienteID)
	if err != nil {
		return nil, opFailed("list descargos", err)
	}
	return ds, nil
}

// UnbilledLinesForPatient returns the consumption lines not yet attached to
// any invoice, in batch-creation then line-creation order.
func (e *Engine) UnbilledLinesForPatient(ctx context.Context, pacienteID uint) ([]models.LineaDescargo, error) {
	if _, err := e.repo.GetPatient(ctx, pacienteID); err != nil {
		return nil, opFailed("list unbilled lines", err)
	}
	lineas, err := e.repo.UnbilledLines(ctx, pacienteID)
	if err != nil {
		return nil, opFailed("list unbilled lines", err)
	}
	return lineas, nil
}
