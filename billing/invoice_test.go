package billing

import (
	"context"
	"testing"

	"facturacion-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dischargedStoreWithLines seeds a discharged patient holding one unbilled
// 500.00 consumption line, plus a client to bill.
func dischargedStoreWithLines(t *testing.T) (*memStore, *Engine) {
	t.Helper()
	store := newMemStore()
	store.pacientes[3] = models.Paciente{ID: 3, NombreCompleto: "Marta Díaz", Estado: models.EstadoInternado, Afeccion: "fractura"}
	store.clientes[1] = models.Cliente{ID: 1, Nombre: "Seguros Andinos", Direccion: "Av. Central 12", Telefono: "555-0101", Correo: "pagos@andinos.example"}
	cat := &memCatalog{
		servicios: map[uint]Item{1: {PrecioUnitario: 250, Descripcion: "Servicio: Procedimiento"}},
		productos: map[uint]Item{},
	}
	e := newTestEngine(store, cat)

	ctx := context.Background()
	_, err := e.CreateBatch(ctx, 3, []LineaInput{{ServicioID: uintPtr(1), Cantidad: 2}})
	require.NoError(t, err)
	_, err = e.DischargePatient(ctx, 3)
	require.NoError(t, err)
	return store, e
}

func TestGenerateInvoiceArithmetic(t *testing.T) {
	store, e := dischargedStoreWithLines(t)
	ctx := context.Background()

	f, err := e.GenerateInvoice(ctx, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, 500.0, f.Subtotal)
	assert.Equal(t, 80.0, f.Impuesto)
	assert.Equal(t, 580.0, f.TotalGeneral)
	assert.Equal(t, f.Subtotal+f.Impuesto, f.TotalGeneral)
	assert.Equal(t, "FACT-20250314-0003", f.NumeroFactura)
	assert.Equal(t, models.EstadoPagoPendiente, f.EstadoPago)
	assert.Equal(t, "Pago dentro de 30 días", f.TerminosCondiciones)

	require.Len(t, f.Lineas, 1)
	assert.Equal(t, TasaIVA, f.Lineas[0].TasaIVA)
	assert.Equal(t, 80.0, f.Lineas[0].IVA)
	assert.Equal(t, 580.0, f.Lineas[0].TotalConIVA)

	assert.Equal(t, models.EstadoFacturado, store.pacientes[3].Estado)
}

func TestGenerateInvoiceTwiceFails(t *testing.T) {
	_, e := dischargedStoreWithLines(t)
	ctx := context.Background()

	_, err := e.GenerateInvoice(ctx, 3, 1)
	require.NoError(t, err)

	_, err = e.GenerateInvoice(ctx, 3, 1)
	var it *InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, models.EstadoFacturado, it.Estado)
}

func TestGenerateInvoiceWhileAdmittedFails(t *testing.T) {
	store := newMemStore()
	store.pacientes[1] = models.Paciente{ID: 1, Estado: models.EstadoInternado}
	store.clientes[1] = models.Cliente{ID: 1}
	e := newTestEngine(store, nil)

	_, err := e.GenerateInvoice(context.Background(), 1, 1)
	var it *InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, models.EstadoInternado, it.Estado)
}

func TestGenerateInvoiceNothingToInvoice(t *testing.T) {
	store := newMemStore()
	store.pacientes[1] = models.Paciente{ID: 1, Estado: models.EstadoInternado}
	store.clientes[1] = models.Cliente{ID: 1}
	e := newTestEngine(store, nil)
	ctx := context.Background()

	_, err := e.DischargePatient(ctx, 1)
	require.NoError(t, err)

	_, err = e.GenerateInvoice(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrNothingToInvoice)
	assert.Equal(t, models.EstadoAlta, store.pacientes[1].Estado, "failed invoicing must not transition the patient")
}

func TestGenerateInvoiceUnknownClient(t *testing.T) {
	store, e := dischargedStoreWithLines(t)

	_, err := e.GenerateInvoice(context.Background(), 3, 42)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "cliente", nf.Kind)
	assert.Empty(t, store.facturas)
}

// A storage failure after the invoice insert rolls back the whole unit of
// work: no invoice, no status transition.
func TestGenerateInvoiceAtomicRollback(t *testing.T) {
	store, e := dischargedStoreWithLines(t)
	store.failStatusUpdate = true

	_, err := e.GenerateInvoice(context.Background(), 3, 1)
	var of *OperationFailedError
	require.ErrorAs(t, err, &of)
	assert.Empty(t, store.facturas)
	assert.Equal(t, models.EstadoAlta, store.pacientes[3].Estado)
}

// Every consumption line is billed at most once: lines on the first invoice
// never reappear, and a patient cannot re-enter the invoicable status.
func TestAtMostOnceBilling(t *testing.T) {
	store, e := dischargedStoreWithLines(t)
	ctx := context.Background()

	f, err := e.GenerateInvoice(ctx, 3, 1)
	require.NoError(t, err)
	require.Len(t, f.Lineas, 1)

	lineas, err := e.UnbilledLinesForPatient(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, lineas, "billed lines must be excluded from future invoicing")

	billed := map[uint]int{}
	for _, fac := range store.facturas {
		for _, lf := range fac.Lineas {
			billed[lf.LineaDescargoID]++
		}
	}
	for id, n := range billed {
		assert.Equal(t, 1, n, "line %d billed more than once", id)
	}
}

func TestGetInvoiceView(t *testing.T) {
	_, e := dischargedStoreWithLines(t)
	ctx := context.Background()

	f, err := e.GenerateInvoice(ctx, 3, 1)
	require.NoError(t, err)

	view, err := e.GetInvoice(ctx, f.ID)
	require.NoError(t, err)

	assert.Equal(t, f.NumeroFactura, view.Factura.NumeroFactura)
	assert.Equal(t, 500.0, view.Factura.Subtotal)
	assert.Equal(t, "Marta Díaz", view.Paciente.NombreCompleto)
	assert.Equal(t, "fractura", view.Paciente.Afeccion)
	assert.Equal(t, "Seguros Andinos", view.Cliente.Nombre)
	assert.Equal(t, "Hospital Ejemplo", view.Hospital.Nombre)

	require.Len(t, view.Lineas, 1)
	l := view.Lineas[0]
	assert.Equal(t, "Servicio: Procedimiento", l.Descripcion)
	assert.Equal(t, 2, l.Cantidad)
	assert.Equal(t, 250.0, l.PrecioUnitario)
	assert.Equal(t, 500.0, l.SubtotalSinIVA)
	assert.Equal(t, 80.0, l.IVA)
	assert.Equal(t, 580.0, l.TotalConIVA)
}

// A view line whose backing consumption data is gone is emitted zero-filled,
// not omitted.
func TestInvoiceViewOrphanedLineZeroFilled(t *testing.T) {
	f := &models.Factura{
		ID:            9,
		NumeroFactura: "FACT-20250314-0009",
		Lineas: []models.LineaFactura{
			{LineaDescargoID: 77, IVA: 16, TotalConIVA: 116, LineaDescargo: nil},
		},
	}
	view := buildInvoiceView(f)

	require.Len(t, view.Lineas, 1)
	l := view.Lineas[0]
	assert.Equal(t, "", l.Descripcion)
	assert.Equal(t, 0, l.Cantidad)
	assert.Equal(t, 0.0, l.PrecioUnitario)
	assert.Equal(t, 0.0, l.SubtotalSinIVA)
	assert.Equal(t, 16.0, l.IVA)
	assert.Equal(t, 116.0, l.TotalConIVA)
}

func TestInvoiceViewZeroQuantityUnitPrice(t *testing.T) {
	f := &models.Factura{
		Lineas: []models.LineaFactura{
			{LineaDescargoID: 1, LineaDescargo: &models.LineaDescargo{ID: 1, Cantidad: 0, SubtotalSinIVA: 10}},
		},
	}
	view := buildInvoiceView(f)
	require.Len(t, view.Lineas, 1)
	assert.Equal(t, 0.0, view.Lineas[0].PrecioUnitario)
}

func TestGetInvoiceNotFound(t *testing.T) {
	e := newTestEngine(newMemStore(), nil)

	_, err := e.GetInvoice(context.Background(), 5)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "factura", nf.Kind)
}

func TestListInvoices(t *testing.T) {
	_, e := dischargedStoreWithLines(t)
	ctx := context.Background()

	_, err := e.GenerateInvoice(ctx, 3, 1)
	require.NoError(t, err)

	views, err := e.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "FACT-20250314-0003", views[0].Factura.NumeroFactura)
}
