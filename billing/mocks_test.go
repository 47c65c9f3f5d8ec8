package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facturacion-backend/models"
)

// memStore is the in-memory backing state shared by the mock collaborators.
type memStore struct {
	pacientes map[uint]models.Paciente
	clientes  map[uint]models.Cliente
	descargos []models.Descargo
	facturas  []models.Factura

	nextDescargoID uint
	nextLineaID    uint
	nextFacturaID  uint

	failCreateBatch   bool
	failCreateInvoice bool
	failStatusUpdate  bool
}

func newMemStore() *memStore {
	return &memStore{
		pacientes:      map[uint]models.Paciente{},
		clientes:       map[uint]models.Cliente{},
		nextDescargoID: 1,
		nextLineaID:    1,
		nextFacturaID:  1,
	}
}

func (s *memStore) clone() *memStore {
	c := *s
	c.pacientes = make(map[uint]models.Paciente, len(s.pacientes))
	for k, v := range s.pacientes {
		c.pacientes[k] = v
	}
	c.clientes = make(map[uint]models.Cliente, len(s.clientes))
	for k, v := range s.clientes {
		c.clientes[k] = v
	}
	c.descargos = make([]models.Descargo, len(s.descargos))
	for i, d := range s.descargos {
		d.Lineas = append([]models.LineaDescargo(nil), d.Lineas...)
		c.descargos[i] = d
	}
	c.facturas = make([]models.Factura, len(s.facturas))
	for i, f := range s.facturas {
		f.Lineas = append([]models.LineaFactura(nil), f.Lineas...)
		c.facturas[i] = f
	}
	return &c
}

func (s *memStore) lineByID(id uint) *models.LineaDescargo {
	for di := range s.descargos {
		for li := range s.descargos[di].Lineas {
			if s.descargos[di].Lineas[li].ID == id {
				ld := s.descargos[di].Lineas[li]
				return &ld
			}
		}
	}
	return nil
}

func (s *memStore) lineBilled(id uint) bool {
	for _, f := range s.facturas {
		for _, lf := range f.Lineas {
			if lf.LineaDescargoID == id {
				return true
			}
		}
	}
	return false
}

// memRepo implements Repository over a memStore. WithTransaction runs fn on a
// clone of the store and publishes the clone only when fn succeeds, so a
// failing unit of work leaves no trace, as the real store guarantees.
type memRepo struct {
	s *memStore
}

func (m *memRepo) WithTransaction(_ context.Context, fn func(Repository) error) error {
	staged := m.s.clone()
	if err := fn(&memRepo{s: staged}); err != nil {
		return err
	}
	*m.s = *staged
	return nil
}

func (m *memRepo) GetPatient(_ context.Context, id uint) (*models.Paciente, error) {
	p, ok := m.s.pacientes[id]
	if !ok {
		return nil, &NotFoundError{Kind: "paciente", ID: id}
	}
	return &p, nil
}

func (m *memRepo) UpdatePatientStatus(_ context.Context, id uint, from, to string, fechaAlta *time.Time) error {
	if m.s.failStatusUpdate {
		return errors.New("status update failure injected")
	}
	p, ok := m.s.pacientes[id]
	if !ok || p.Estado != from {
		return &InvalidTransitionError{Action: "cambiar estado a " + to, Estado: p.Estado}
	}
	p.Estado = to
	if fechaAlta != nil {
		p.FechaAlta = fechaAlta
	}
	m.s.pacientes[id] = p
	return nil
}

func (m *memRepo) CreateBatch(_ context.Context, d *models.Descargo) error {
	if m.s.failCreateBatch {
		return errors.New("batch insert failure injected")
	}
	d.ID = m.s.nextDescargoID
	m.s.nextDescargoID++
	for i := range d.Lineas {
		d.Lineas[i].ID = m.s.nextLineaID
		d.Lineas[i].DescargoID = d.ID
		m.s.nextLineaID++
	}
	m.s.descargos = append(m.s.descargos, *d)
	return nil
}

func (m *memRepo) BatchesForPatient(_ context.Context, pacienteID uint) ([]models.Descargo, error) {
	var out []models.Descargo
	for _, d := range m.s.descargos {
		if d.PacienteID == pacienteID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memRepo) UnbilledLines(_ context.Context, pacienteID uint) ([]models.LineaDescargo, error) {
	var out []models.LineaDescargo
	for _, d := range m.s.descargos {
		if d.PacienteID != pacienteID {
			continue
		}
		for _, ld := range d.Lineas {
			if !m.s.lineBilled(ld.ID) {
				out = append(out, ld)
			}
		}
	}
	return out, nil
}

func (m *memRepo) CreateInvoice(_ context.Context, f *models.Factura) error {
	if m.s.failCreateInvoice {
		return errors.New("invoice insert failure injected")
	}
	for _, existing := range m.s.facturas {
		if existing.NumeroFactura == f.NumeroFactura {
			return fmt.Errorf("duplicate numero_factura %s", f.NumeroFactura)
		}
	}
	for i := range f.Lineas {
		if m.s.lineBilled(f.Lineas[i].LineaDescargoID) {
			return fmt.Errorf("linea %d already billed", f.Lineas[i].LineaDescargoID)
		}
	}
	f.ID = m.s.nextFacturaID
	m.s.nextFacturaID++
	for i := range f.Lineas {
		f.Lineas[i].FacturaID = f.ID
	}
	m.s.facturas = append(m.s.facturas, *f)
	return nil
}

func (m *memRepo) GetInvoice(_ context.Context, id uint) (*models.Factura, error) {
	for _, f := range m.s.facturas {
		if f.ID == id {
			out := f
			out.Lineas = append([]models.LineaFactura(nil), f.Lineas...)
			if p, ok := m.s.pacientes[f.PacienteID]; ok {
				out.Paciente = &p
			}
			if c, ok := m.s.clientes[f.ClienteID]; ok {
				out.Cliente = &c
			}
			for i := range out.Lineas {
				out.Lineas[i].LineaDescargo = m.s.lineByID(out.Lineas[i].LineaDescargoID)
			}
			return &out, nil
		}
	}
	return nil, &NotFoundError{Kind: "factura", ID: id}
}

func (m *memRepo) ListInvoices(ctx context.Context) ([]models.Factura, error) {
	out := make([]models.Factura, 0, len(m.s.facturas))
	for _, f := range m.s.facturas {
		loaded, err := m.GetInvoice(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *loaded)
	}
	return out, nil
}

func (m *memRepo) GetClient(_ context.Context, id uint) (*models.Cliente, error) {
	c, ok := m.s.clientes[id]
	if !ok {
		return nil, &NotFoundError{Kind: "cliente", ID: id}
	}
	return &c, nil
}

// memCatalog resolves references from fixed price tables.
type memCatalog struct {
	servicios map[uint]Item
	productos map[uint]Item
}

func (m *memCatalog) Resolve(_ context.Context, servicioID, productoID *uint) (Item, error) {
	switch {
	case servicioID != nil:
		item, ok := m.servicios[*servicioID]
		if !ok {
			return Item{}, &NotFoundError{Kind: "servicio", ID: *servicioID}
		}
		return item, nil
	case productoID != nil:
		item, ok := m.productos[*productoID]
		if !ok {
			return Item{}, &NotFoundError{Kind: "producto", ID: *productoID}
		}
		return item, nil
	default:
		return Item{}, ErrAmbiguousLineSelection
	}
}

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestEngine(store *memStore, cat *memCatalog) *Engine {
	repo := &memRepo{s: store}
	if cat == nil {
		cat = &memCatalog{servicios: map[uint]Item{}, productos: map[uint]Item{}}
	}
	e := NewEngine(repo, cat, repo)
	e.now = func() time.Time { return testNow }
	return e
}

func uintPtr(v uint) *uint { return &v }
