package catalog

import (
	"context"
	"errors"

	"facturacion-backend/billing"
	"facturacion-backend/models"

	"gorm.io/gorm"
)

// Lookup resolves catalog references against the database. It satisfies
// billing.CatalogLookup.
type Lookup struct {
	db *gorm.DB
}

func NewLookup(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

// Resolve returns the frozen price and description for a service or product
// reference. The billing engine guarantees exactly one id is non-nil.
func (l *Lookup) Resolve(ctx context.Context, servicioID, productoID *uint) (billing.Item, error) {
	switch {
	case servicioID != nil:
		var s models.Servicio
		if err := l.db.WithContext(ctx).First(&s, *servicioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return billing.Item{}, &billing.NotFoundError{Kind: "servicio", ID: *servicioID}
			}
			return billing.Item{}, err
		}
		return billing.Item{
			PrecioUnitario: s.PrecioBase,
			Descripcion:    "Servicio: " + s.Descripcion,
		}, nil
	case productoID != nil:
		var p models.Producto
		if err := l.db.WithContext(ctx).First(&p, *productoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return billing.Item{}, &billing.NotFoundError{Kind: "producto", ID: *productoID}
			}
			return billing.Item{}, err
		}
		return billing.Item{
			PrecioUnitario: p.PrecioBase,
			Descripcion:    "Producto: " + p.Descripcion,
		}, nil
	default:
		return billing.Item{}, billing.ErrAmbiguousLineSelection
	}
}
