// Package pdf genera el comprobante de pedido en PDF con Maroto v2.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Negocio           │ N° Pedido+Fecha │
//	│  CLIENTE: Nombre / Tel / Email / Dirección   │
//	│  PEDIDO: Producto, temática, entrega, notas  │
//	│  TOTALES: Precio / Pagado / Pendiente        │
//	│  QR con la referencia + estado de cobro      │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Pedidos-api/internal/application/ports"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 122, Green: 64, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var statusLabels = map[entity.OrderStatus]string{
	entity.OrderStatusPending:    "Pendiente",
	entity.OrderStatusInProgress: "En proceso",
	entity.OrderStatusCompleted:  "Completado",
}

var paymentLabels = map[entity.PaymentMethod]string{
	entity.PaymentDelivery: "Pago contra entrega",
	entity.PaymentAdvance:  "Anticipo",
	entity.PaymentFull:     "Pago completo",
}

var paymentStateLabels = map[entity.PaymentState]string{
	entity.PaymentStatePaid:    "PAGADO",
	entity.PaymentStatePartial: "PAGO PARCIAL",
	entity.PaymentStatePending: "PENDIENTE DE PAGO",
}

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	business string
}

// NewMarotoReceiptGenerator construye el generador. business aparece en la cabecera.
func NewMarotoReceiptGenerator(business string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{business: business}
}

// GenerateOrderReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(_ context.Context, o *entity.OrderWithCustomer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pedido", true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.business, o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(&o.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(orderRows(&o.Order)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(&o.Order))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(&o.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(business string, o *entity.OrderWithCustomer) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(business, "Pedidos"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pedido", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortRef(o.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+o.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", c.Phone, nonEmpty(c.Email, "—")),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New("Dirección: "+nonEmpty(c.Address, "—"), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

// orderRows una fila etiqueta/valor por dato del pedido; los vacíos se omiten.
func orderRows(o *entity.Order) []core.Row {
	delivery := "Sin fecha"
	if o.DeliveryDate != nil {
		delivery = o.DeliveryDate.Format("02/01/2006")
	}
	fields := [][2]string{
		{"Producto", o.Product},
		{"Temática", o.Theme},
		{"Descripción", o.Description},
		{"Estado", statusLabels[o.Status]},
		{"Forma de pago", paymentLabels[o.PaymentMethod]},
		{"Entrega", delivery},
		{"Dirección de entrega", o.DeliveryAddress},
		{"Notas", o.Notes},
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DETALLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(f[0]+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(8).Add(text.New(f[1], props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

func totalsRow(o *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		})
	}

	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Precio:"),
			label("Pagado:"),
			label("Pendiente:"),
		),
		col.New(4).Add(
			value(formatMoney(o.Price)),
			value(formatMoney(o.PaidAmount)),
			grand(formatMoney(o.Outstanding())),
		),
	)
}

func footerRow(o *entity.Order) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(o.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New(paymentStateLabels[o.PaymentState()], props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("Referencia: "+o.ID, props.Text{Size: 6.5, Top: 16, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortRef primeros 8 caracteres del id en mayúsculas, ej. "3F2A9C1D".
func shortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// formatMoney formatea con punto de miles y coma decimal: 1234.5 → "1.234,50 €".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + string(buf) + "," + frac + " €"
}
