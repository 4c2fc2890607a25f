// Package pdf implementa la generación de la nota de entrega de materiales:
// el comprobante imprimible que firma quien retira material en bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Almacén + N° Solicitud + Fecha                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre + propósito                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Ítem | Valor | Entregado por         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor total entregado                                │
//	│  FIRMAS: entrega / recibe                                    │
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

	"github.com/jhoicas/Almacen-erp/internal/application/reports"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.IssueNotePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.IssueNotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateIssueNotePDF genera el PDF de la nota de entrega y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateIssueNotePDF(
	_ context.Context,
	request *entity.InventoryRequest,
	issues []*entity.InventoryIssue,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Entrega de Materiales", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(issues) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(issues))
	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRow(issues))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del almacén (izq) y número de solicitud + fecha (der).
func headerRow(request *entity.InventoryRequest) core.Row {
	fecha := request.RequestedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ALMACÉN CENTRAL", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Nota de entrega de materiales", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SOLICITUD N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(request.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// requesterRow: solicitante y propósito declarado.
func requesterRow(request *entity.InventoryRequest) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(request.RequesterName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Propósito: "+nonEmpty(request.Purpose, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de entregas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Ítem", 4, align.Left),
		h("Valor", 2, align.Right),
		h("Entregado por", 3, align.Left),
	)
}

// tableDetailRows: una fila por asiento del libro de entregas.
func tableDetailRows(issues []*entity.InventoryIssue) []core.Row {
	result := make([]core.Row, 0, len(issues))
	for _, issue := range issues {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				issue.IssuedQuantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				issue.ItemCode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				issue.ItemName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+issue.ItemValue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(issue.IssuedByUsername, issue.IssuedByUserID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalRow: valor total de lo entregado contra la solicitud.
func totalRow(issues []*entity.InventoryIssue) core.Row {
	total := decimal.Zero
	for _, issue := range issues {
		total = total.Add(issue.ItemValue)
	}
	return row.New(10).Add(
		col.New(7),
		col.New(3).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// signatureRow: líneas de firma para quien entrega y quien recibe.
func signatureRow(issues []*entity.InventoryIssue) core.Row {
	entrega := "—"
	recibe := "—"
	if len(issues) > 0 {
		entrega = nonEmpty(issues[0].IssuedByUsername, issues[0].IssuedByUserID)
		recibe = nonEmpty(issues[0].IssuedToUsername, issues[0].IssuedToUserID)
	}
	sig := func(role, name string) core.Col {
		return col.New(6).Add(
			text.New("________________________", props.Text{Size: 9, Align: align.Center, Top: 2}),
			text.New(role+": "+name, props.Text{Size: 8, Align: align.Center, Top: 8, Color: colorGray}),
		)
	}
	return row.New(16).Add(
		sig("Entrega", entrega),
		sig("Recibe", recibe),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
