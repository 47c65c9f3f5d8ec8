// Package repository is the GORM implementation of the billing engine's
// storage ports.
package repository

import (
	"context"
	"errors"
	"time"

	"facturacion-backend/billing"
	"facturacion-backend/models"

	"gorm.io/gorm"
)

type Gorm struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// WithTransaction runs fn against a transaction-scoped repository. GORM rolls
// the whole unit back when fn returns an error or panics.
func (g *Gorm) WithTransaction(ctx context.Context, fn func(billing.Repository) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

func (g *Gorm) GetPatient(ctx context.Context, id uint) (*models.Paciente, error) {
	var p models.Paciente
	if err := g.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &billing.NotFoundError{Kind: "paciente", ID: id}
		}
		return nil, err
	}
	return &p, nil
}

// UpdatePatientStatus is guarded by the expected current status. Zero rows
// affected means another writer already moved the patient on; that surfaces
// as InvalidTransition, which closes the concurrent-invoicing race inside the
// enclosing transaction.
func (g *Gorm) UpdatePatientStatus(ctx context.Context, id uint, from, to string, fechaAlta *time.Time) error {
	updates := map[string]any{"estado": to}
	if fechaAlta != nil {
		updates["fecha_alta"] = *fechaAlta
	}
	res := g.db.WithContext(ctx).
		Model(&models.Paciente{}).
		Where("id = ? AND estado = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &billing.InvalidTransitionError{Action: "cambiar estado a " + to, Estado: from}
	}
	return nil
}

func (g *Gorm) CreateBatch(ctx context.Context, d *models.Descargo) error {
	return g.db.WithContext(ctx).Create(d).Error
}

func (g *Gorm) BatchesForPatient(ctx context.Context, pacienteID uint) ([]models.Descargo, error) {
	var ds []models.Descargo
	err := g.db.WithContext(ctx).
		Preload("Lineas").
		Where("paciente_id = ?", pacienteID).
		Order("id").
		Find(&ds).Error
	return ds, err
}

// UnbilledLines selects the patient's consumption lines with no invoice line
// yet, in batch-creation then line-creation order. The ordering is part of
// the contract: invoice totals must be reproducible.
func (g *Gorm) UnbilledLines(ctx context.Context, pacienteID uint) ([]models.LineaDescargo, error) {
	var lineas []models.LineaDescargo
	err := g.db.WithContext(ctx).
		Table("lineas_descargo ld").
		Select("ld.*").
		Joins("JOIN descargos d ON d.id = ld.descargo_id").
		Where("d.paciente_id = ?", pacienteID).
		Where("NOT EXISTS (SELECT 1 FROM lineas_factura lf WHERE lf.linea_descargo_id = ld.id)").
		Order("d.id, ld.id").
		Find(&lineas).Error
	return lineas, err
}

func (g *Gorm) CreateInvoice(ctx context.Context, f *models.Factura) error {
	return g.db.WithContext(ctx).Create(f).Error
}

func (g *Gorm) GetInvoice(ctx context.Context, id uint) (*models.Factura, error) {
	var f models.Factura
	err := g.db.WithContext(ctx).
		Preload("Paciente").
		Preload("Cliente").
		Preload("Lineas").
		Preload("Lineas.LineaDescargo").
		First(&f, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &billing.NotFoundError{Kind: "factura", ID: id}
		}
		return nil, err
	}
	return &f, nil
}

func (g *Gorm) ListInvoices(ctx context.Context) ([]models.Factura, error) {
	var fs []models.Factura
	err := g.db.WithContext(ctx).
		Preload("Paciente").
		Preload("Cliente").
		Preload("Lineas").
		Preload("Lineas.LineaDescargo").
		Order("id").
		Find(&fs).Error
	return fs, err
}

func (g *Gorm) GetClient(ctx context.Context, id uint) (*models.Cliente, error) {
	var c models.Cliente
	if err := g.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &billing.NotFoundError{Kind: "cliente", ID: id}
		}
		return nil, err
	}
	return &c, nil
}

// PatientsWithBatchesByStatus backs the dashboard projections: patients in
// the given status that own at least one descargo, lines preloaded.
func (g *Gorm) PatientsWithBatchesByStatus(ctx context.Context, estado string) ([]models.Paciente, error) {
	var ps []models.Paciente
	err := g.db.WithContext(ctx).
		Preload("Descargos").
		Preload("Descargos.Lineas").
		Where("estado = ?", estado).
		Where("EXISTS (SELECT 1 FROM descargos d WHERE d.paciente_id = pacientes.id)").
		Order("id").
		Find(&ps).Error
	return ps, err
}

// HasInvoice reports whether any invoice references the patient. Patients
// are never deleted once an invoice exists.
func (g *Gorm) HasInvoice(ctx context.Context, pacienteID uint) (bool, error) {
	var n int64
	err := g.db.WithContext(ctx).
		Model(&models.Factura{}).
		Where("paciente_id = ?", pacienteID).
		Count(&n).Error
	return n > 0, err
}
