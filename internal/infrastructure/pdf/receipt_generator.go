// Package pdf genera el comprobante de pago de nómina en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  COMPROBANTE DE PAGO + Fecha │
//	│  EMPLEADO: Nombre + Documento + Cargo                        │
//	│  PERÍODO: desde / hasta                                      │
//	│  TABLA: Concepto | Fecha | Devengado | Deducido              │
//	│  TOTALES: Bruto / Descuentos / Adelantos / NETO PAGADO       │
//	│  FIRMAS: Empleador  |  Empleado                              │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Nomina-api/internal/application/payroll"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ payroll.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa payroll.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	companyName string
	printer     *message.Printer
}

// NewReceiptGenerator construye el generador. companyName encabeza el comprobante.
func NewReceiptGenerator(companyName string) *ReceiptGenerator {
	return &ReceiptGenerator{
		companyName: companyName,
		printer:     message.NewPrinter(language.Spanish),
	}
}

// GeneratePaymentReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GeneratePaymentReceipt(_ context.Context, data payroll.ReceiptData) ([]byte, error) {
	if data.Payment == nil || data.Employee == nil {
		return nil, fmt.Errorf("pdf: pago y empleado son obligatorios")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago de nómina", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(data))
	m.AddRows(periodRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.conceptRows(data)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data))
	if data.Payment.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+data.Payment.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(row.New(20))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(data payroll.ReceiptData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PAGO DE NÓMINA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha de pago: "+data.Payment.PaidAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func employeeRow(data payroll.ReceiptData) core.Row {
	e := data.Employee
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(e.FullName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Documento: %s   |   Cargo: %s", e.DocumentID, nonEmpty(e.Position, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func periodRow(data payroll.ReceiptData) core.Row {
	p := data.Payment
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Período liquidado: %s al %s",
			p.PeriodStart.Format("02/01/2006"), p.PeriodEnd.Format("02/01/2006")),
			props.Text{Size: 8, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Fecha", 2, align.Center),
		h("Devengado", 2, align.Right),
		h("Deducido", 2, align.Right),
	)
}

// conceptRows salario bruto, luego cada descuento y cada adelanto consumido por el pago.
func (g *ReceiptGenerator) conceptRows(data payroll.ReceiptData) []core.Row {
	concept := func(label, date, earned, deducted string) core.Row {
		return row.New(7).Add(
			col.New(6).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(date, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(earned, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(deducted, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
	}

	rows := []core.Row{concept("Salario del período", "", g.money(data.Payment.GrossAmount), "")}
	for _, d := range data.Discounts {
		rows = append(rows, concept("Descuento: "+d.Reason, d.Date.Format("02/01/2006"), "", g.money(d.Amount)))
	}
	for _, a := range data.Advances {
		rows = append(rows, concept("Adelanto: "+a.Reason, a.Date.Format("02/01/2006"), "", g.money(a.Amount)))
	}
	return rows
}

func (g *ReceiptGenerator) totalsRow(data payroll.ReceiptData) core.Row {
	p := data.Payment
	label := func(s string, grand bool) core.Component {
		t := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}
		if grand {
			t.Size, t.Color = 10, colorPrimary
		}
		return text.New(s, t)
	}
	value := func(s string, grand bool) core.Component {
		t := props.Text{Size: 9, Align: align.Right, Right: 1}
		if grand {
			t.Style, t.Size, t.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(s, t)
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Salario bruto:", false),
			label("Descuentos:", false),
			label("Adelantos:", false),
			label("NETO PAGADO:", true),
		),
		col.New(3).Add(
			value(g.money(p.GrossAmount), false),
			value(g.money(p.DiscountsTotal), false),
			value(g.money(p.AdvancesTotal), false),
			value(g.money(p.NetAmount), true),
		),
	)
}

func signatureRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(12).Add(sign("Firma empleador"), sign("Firma empleado"))
}

// money formatea pesos sin decimales con separador de miles del locale: 1500000 -> "$1.500.000".
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%d", d.Round(0).IntPart())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
