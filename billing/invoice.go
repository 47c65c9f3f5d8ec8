package billing

import (
	"context"
	"fmt"

	"facturacion-backend/models"
	"facturacion-backend/utils"
)

// TasaIVA is the fixed policy tax rate applied to every invoice line.
const TasaIVA = 0.16

const terminosPorDefecto = "Pago dentro de 30 días"

// GenerateInvoice aggregates all of the patient's unbilled consumption into a
// new invoice and moves the patient alta -> facturado. The invoice, its lines
// and the status transition commit as a single atomic unit; the guarded status
// update makes a concurrent second attempt fail with InvalidTransition instead
// of double-billing.
//
// The invoice number FACT-{yyyymmdd}-{pacienteID} is not guaranteed unique if
// generation is retried for the same patient on the same day; the unique
// column constraint turns that into a surfaced failure rather than a silent
// duplicate.
func (e *Engine) GenerateInvoice(ctx context.Context, pacienteID, clienteID uint) (*models.Factura, error) {
	var created *models.Factura
	err := e.repo.WithTransaction(ctx, func(r Repository) error {
		p, err := r.GetPatient(ctx, pacienteID)
		if err != nil {
			return err
		}
		if err := stateFor(p.Estado).invoice(p); err != nil {
			return err
		}

		cliente, err := e.clients.GetClient(ctx, clienteID)
		if err != nil {
			return err
		}

		lineas, err := r.UnbilledLines(ctx, pacienteID)
		if err != nil {
			return err
		}
		if len(lineas) == 0 {
			return ErrNothingToInvoice
		}

		now := e.now()
		f := &models.Factura{
			NumeroFactura:       fmt.Sprintf("FACT-%s-%04d", now.Format("20060102"), p.ID),
			FechaEmision:        now,
			EstadoPago:          models.EstadoPagoPendiente,
			TerminosCondiciones: terminosPorDefecto,
			PacienteID:          p.ID,
			ClienteID:           cliente.ID,
		}
		var subtotal, impuesto float64
		for _, ld := range lineas {
			iva := utils.Round2(ld.SubtotalSinIVA * TasaIVA)
			subtotal += ld.SubtotalSinIVA
			impuesto += iva
			f.Lineas = append(f.Lineas, models.LineaFactura{
				LineaDescargoID: ld.ID,
				TasaIVA:         TasaIVA,
				IVA:             iva,
				TotalConIVA:     utils.Round2(ld.SubtotalSinIVA + iva),
			})
		}
		f.Subtotal = utils.Round2(subtotal)
		f.Impuesto = utils.Round2(impuesto)
		f.TotalGeneral = utils.Round2(f.Subtotal + f.Impuesto)

		if err := r.CreateInvoice(ctx, f); err != nil {
			return err
		}
		if err := r.UpdatePatientStatus(ctx, p.ID, models.EstadoAlta, models.EstadoFacturado, nil); err != nil {
			return err
		}
		created = f
		return nil
	})
	if err != nil {
		return nil, opFailed("generate invoice", err)
	}
	return created, nil
}
