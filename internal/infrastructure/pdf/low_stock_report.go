// Package pdf genera el reporte de alertas de bajo stock con Maroto v2.
//
// Layout de la página A4: encabezado (título, empresa, fecha de generación),
// tabla con una fila por alerta y pie con el total de alertas.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/dto"
)

var _ alerts.ReportGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa alerts.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport genera el PDF y devuelve sus bytes. Una lista vacía produce
// el documento con la leyenda "sin alertas".
func (g *MarotoReportGenerator) GenerateLowStockReport(
	_ context.Context,
	companyID int64,
	generatedAt time.Time,
	list []dto.LowStockAlertDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Low stock alerts", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyID, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(list) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin alertas de bajo stock.", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(list) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de alertas: %d", len(list)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(companyID int64, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("ALERTAS DE BAJO STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Empresa #"+strconv.FormatInt(companyID, 10), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.UTC().Format("02/01/2006 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("SKU", 2, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Días", 1, align.Right),
		h("Proveedor", 2, align.Left),
	)
}

// tableDetailRows: una fila por alerta, en el orden recibido.
func tableDetailRows(list []dto.LowStockAlertDTO) []core.Row {
	result := make([]core.Row, 0, len(list))
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
	}
	for _, a := range list {
		stockColor := colorGray
		if a.CurrentStock == 0 {
			stockColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			cell(a.ProductName, 3, align.Left, nil),
			cell(a.SKU, 2, align.Left, colorGray),
			cell(a.WarehouseName, 2, align.Left, nil),
			cell(strconv.FormatInt(a.CurrentStock, 10), 1, align.Right, stockColor),
			cell(strconv.FormatInt(a.Threshold, 10), 1, align.Right, nil),
			cell(daysLabel(a.DaysUntilStockout), 1, align.Right, nil),
			cell(supplierLabel(a.Supplier), 2, align.Left, colorGray),
		))
	}
	return result
}

func daysLabel(days *int64) string {
	if days == nil {
		return "-"
	}
	return strconv.FormatInt(*days, 10)
}

func supplierLabel(s *dto.SupplierSummaryDTO) string {
	if s == nil {
		return "-"
	}
	if s.ContactEmail == "" {
		return s.Name
	}
	return s.Name + "\n" + s.ContactEmail
}
