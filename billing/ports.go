package billing

import (
	"context"
	"time"

	"facturacion-backend/models"
)

// Repository is the storage collaborator of the engine. Implementations must
// make WithTransaction atomic: every mutation performed through the scoped
// Repository either commits as a whole or leaves no trace.
type Repository interface {
	// WithTransaction runs fn against a transaction-scoped Repository and
	// commits iff fn returns nil.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	GetPatient(ctx context.Context, id uint) (*models.Paciente, error)

	// UpdatePatientStatus applies from -> to guarded by the current status:
	// it must return an *InvalidTransitionError when the patient is no longer
	// in the from status (closes the read-then-write race on concurrent
	// invoicing). fechaAlta, when non-nil, is written alongside.
	UpdatePatientStatus(ctx context.Context, id uint, from, to string, fechaAlta *time.Time) error

	CreateBatch(ctx context.Context, d *models.Descargo) error
	BatchesForPatient(ctx context.Context, pacienteID uint) ([]models.Descargo, error)

	// UnbilledLines returns every consumption line of the patient that has no
	// invoice line yet, ordered by batch creation then line creation.
	UnbilledLines(ctx context.Context, pacienteID uint) ([]models.LineaDescargo, error)

	CreateInvoice(ctx context.Context, f *models.Factura) error
	GetInvoice(ctx context.Context, id uint) (*models.Factura, error)
	ListInvoices(ctx context.Context) ([]models.Factura, error)
}

// Item is a catalog resolution result; price and description are frozen into
// the consumption line at creation time.
type Item struct {
	PrecioUnitario float64
	Descripcion    string
}

// CatalogLookup resolves a service-or-product reference. Exactly one of the
// ids is non-nil by the time the engine calls it.
type CatalogLookup interface {
	Resolve(ctx context.Context, servicioID, productoID *uint) (Item, error)
}

// ClientDirectory resolves billing recipients.
type ClientDirectory interface {
	GetClient(ctx context.Context, id uint) (*models.Cliente, error)
}
