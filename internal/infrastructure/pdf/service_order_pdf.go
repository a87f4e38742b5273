// Package pdf implementa la orden de servicio imprimible (A4) que el taller
// entrega al cliente al recibir el equipo.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT  │  N° Orden + Fecha + Estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono + dirección                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Descripción del trabajo / falla reportada         │
//	│  TÉCNICO asignado + garantía + valor                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Recibí conforme (cliente)  |  Entregó (técnico)    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[string]string{
	entity.ServiceStatusOpen:       "ABIERTO",
	entity.ServiceStatusInProgress: "EN PROCESO",
	entity.ServiceStatusCompleted:  "COMPLETADO",
	entity.ServiceStatusCancelled:  "ANULADO",
}

var _ usecase.ServiceOrderGenerator = (*MarotoServiceOrderGenerator)(nil)

// MarotoServiceOrderGenerator implementa usecase.ServiceOrderGenerator usando Maroto v2.
type MarotoServiceOrderGenerator struct{}

// NewMarotoServiceOrderGenerator construye el generador.
func NewMarotoServiceOrderGenerator() *MarotoServiceOrderGenerator {
	return &MarotoServiceOrderGenerator{}
}

// GenerateServiceOrder genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoServiceOrderGenerator) GenerateServiceOrder(
	_ context.Context,
	svc *entity.Service,
	company *entity.Company,
	customer *entity.Customer,
	technician *entity.Personnel,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Servicio", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(svc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(svc)...)
	m.AddRows(technicianRow(svc, technician))
	m.AddRows(line.NewRow(3))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y N° de orden + fecha + estado (der).
func headerRow(svc *entity.Service, company *entity.Company) core.Row {
	fecha := svc.ServiceDate.Format("02/01/2006")
	estado := statusLabels[svc.Status]
	if estado == "" {
		estado = svc.Status
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.TaxNumber, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
			), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEN DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(svc.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   %s", fecha, estado), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente que deja el equipo.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Dirección: %s   |   Ciudad: %s",
				customer.Phone,
				nonEmpty(customer.Address, "—"),
				nonEmpty(customer.City, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// detailRows: falla reportada / trabajo a realizar.
func detailRows(svc *entity.Service) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DETALLE DEL SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	descripcion := nonEmpty(svc.Description, "Sin descripción registrada.")
	rows = append(rows, row.New(18).Add(col.New(12).Add(
		text.New(descripcion, props.Text{Size: 9, Top: 2, Left: 2}),
	)))
	return rows
}

// technicianRow: técnico asignado, garantía y valor del servicio.
func technicianRow(svc *entity.Service, technician *entity.Personnel) core.Row {
	tecnico := "Sin asignar"
	if technician != nil {
		tecnico = technician.Name
	}
	garantia := "No"
	if svc.Warranty {
		garantia = "Sí"
	}

	return row.New(12).Add(
		col.New(5).Add(
			text.New("Técnico asignado", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(tecnico, props.Text{Size: 9, Top: 6}),
		),
		col.New(3).Add(
			text.New("Garantía", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(garantia, props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("Valor del servicio", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("$"+formatMoney(svc.Amount.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
		),
	)
}

// signatureRow: líneas de firma para cliente y técnico.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(5).Add(
			text.New("____________________________", props.Text{
				Size: 9, Align: align.Center, Top: 14, Color: colorGray,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 20, Color: colorGray,
			}),
		)
	}
	return row.New(26).Add(
		col.New(1),
		sig("Recibí conforme (cliente)"),
		sig("Entregó (técnico)"),
		col.New(1),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID acorta un UUID a su primer bloque para el número visible de la orden.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
