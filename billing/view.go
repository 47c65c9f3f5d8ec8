package billing

import (
	"context"
	"time"

	"facturacion-backend/models"
)

// InvoiceView is the display projection consumed downstream (PDF rendering,
// email dispatch). Its field names and nesting are a contract; do not rename.
type InvoiceView struct {
	Factura  FacturaView  `json:"factura"`
	Paciente PacienteView `json:"paciente"`
	Cliente  ClienteView  `json:"cliente"`
	Lineas   []LineaView  `json:"lineas"`
	Hospital HospitalView `json:"hospital"`
}

type FacturaView struct {
	ID                  uint      `json:"id"`
	NumeroFactura       string    `json:"numero_factura"`
	FechaEmision        time.Time `json:"fecha_emision"`
	Subtotal            float64   `json:"subtotal"`
	Impuesto            float64   `json:"impuesto"`
	TotalGeneral        float64   `json:"total_general"`
	EstadoPago          string    `json:"estado_pago"`
	TerminosCondiciones string    `json:"terminos_condiciones"`
	PacienteID          uint      `json:"paciente_id"`
	ClienteID           uint      `json:"cliente_id"`
}

type PacienteView struct {
	ID             uint       `json:"id"`
	NombreCompleto string     `json:"nombre_completo"`
	FechaIngreso   time.Time  `json:"fecha_ingreso"`
	FechaAlta      *time.Time `json:"fecha_alta"`
	Afeccion       string     `json:"afeccion"`
}

type ClienteView struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Correo    string `json:"correo"`
}

type LineaView struct {
	Descripcion    string  `json:"descripcion"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	SubtotalSinIVA float64 `json:"subtotal_sin_iva"`
	IVA            float64 `json:"iva"`
	TotalConIVA    float64 `json:"total_con_iva"`
}

type HospitalView struct {
	Nombre        string `json:"nombre"`
	Direccion     string `json:"direccion"`
	Telefono      string `json:"telefono"`
	Email         string `json:"email"`
	Web           string `json:"web"`
	Representante string `json:"representante"`
}

func hospitalView() HospitalView {
	return HospitalView{
		Nombre:        "Hospital Ejemplo",
		Direccion:     "Health District, 123 Streets, Sopporo, Hokkaido",
		Telefono:      "+123 456 789",
		Email:         "hello@email.com",
		Web:           "www.yourweb.com",
		Representante: "Dr. Ramiela Silva, MD, PHD - General Manager",
	}
}

// buildInvoiceView reconstructs the display view from a fully loaded invoice.
// A line missing its backing consumption data is still emitted with
// zero-filled numeric fields rather than omitted.
func buildInvoiceView(f *models.Factura) InvoiceView {
	view := InvoiceView{
		Factura: FacturaView{
			ID:                  f.ID,
			NumeroFactura:       f.NumeroFactura,
			FechaEmision:        f.FechaEmision,
			Subtotal:            f.Subtotal,
			Impuesto:            f.Impuesto,
			TotalGeneral:        f.TotalGeneral,
			EstadoPago:          f.EstadoPago,
			TerminosCondiciones: f.TerminosCondiciones,
			PacienteID:          f.PacienteID,
			ClienteID:           f.ClienteID,
		},
		Lineas:   make([]LineaView, 0, len(f.Lineas)),
		Hospital: hospitalView(),
	}
	if f.Paciente != nil {
		view.Paciente = PacienteView{
			ID:             f.Paciente.ID,
			NombreCompleto: f.Paciente.NombreCompleto,
			FechaIngreso:   f.Paciente.FechaIngreso,
			FechaAlta:      f.Paciente.FechaAlta,
			Afeccion:       f.Paciente.Afeccion,
		}
	}
	if f.Cliente != nil {
		view.Cliente = ClienteView{
			ID:        f.Cliente.ID,
			Nombre:    f.Cliente.Nombre,
			Direccion: f.Cliente.Direccion,
			Telefono:  f.Cliente.Telefono,
			Correo:    f.Cliente.Correo,
		}
	}
	for _, lf := range f.Lineas {
		linea := LineaView{
			IVA:         lf.IVA,
			TotalConIVA: lf.TotalConIVA,
		}
		if ld := lf.LineaDescargo; ld != nil {
			linea.Descripcion = ld.Descripcion
			linea.Cantidad = ld.Cantidad
			linea.SubtotalSinIVA = ld.SubtotalSinIVA
			if ld.Cantidad > 0 {
				linea.PrecioUnitario = ld.SubtotalSinIVA / float64(ld.Cantidad)
			}
		}
		view.Lineas = append(view.Lineas, linea)
	}
	return view
}

// GetInvoice returns the display view of one invoice.
func (e *Engine) GetInvoice(ctx context.Context, id uint) (InvoiceView, error) {
	f, err := e.repo.GetInvoice(ctx, id)
	if err != nil {
		return InvoiceView{}, opFailed("get invoice", err)
	}
	return buildInvoiceView(f), nil
}

// ListInvoices returns display views for every invoice.
func (e *Engine) ListInvoices(ctx context.Context) ([]InvoiceView, error) {
	fs, err := e.repo.ListInvoices(ctx)
	if err != nil {
		return nil, opFailed("list invoices", err)
	}
	views := make([]InvoiceView, 0, len(fs))
	for i := range fs {
		views = append(views, buildInvoiceView(&fs[i]))
	}
	return views, nil
}
