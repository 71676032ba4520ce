// Package pdf genera la versión imprimible del reporte de cumplimiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de cumplimiento + venue │ Puntaje + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: chequeos por severidad / personal activo           │
//	│  TABLA: Chequeo | Severidad | Casos | Detalle                │
//	│  RECOMENDACIONES                                             │
//	│  AUDITORÍA RECIENTE (reportes detailed / audit)              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	"github.com/jhoicas/venue-api/internal/application/compliance"
	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

var _ compliance.ReportRenderer = (*MarotoReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHigh    = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorMedium  = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// maxItems casos listados por chequeo; el resto se resume como "+N".
const maxItems = 5

// MarotoReportRenderer implementa compliance.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// Render genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(report *dto.ComplianceReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de cumplimiento", true).
		WithAuthor(report.VenueID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CHEQUEOS"))
	m.AddRows(checksHeaderRow())
	m.AddRows(checkRows(report.Summary.Checks)...)

	if len(report.Recommendations) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("RECOMENDACIONES"))
		for _, rec := range report.Recommendations {
			m.AddRows(row.New(6).Add(col.New(12).Add(
				text.New("• "+rec, props.Text{Size: 8, Top: 1, Left: 2}),
			)))
		}
	}

	if len(report.RecentAudit) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("AUDITORÍA RECIENTE"))
		m.AddRows(auditRows(report.RecentAudit)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.ComplianceReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("REPORTE DE CUMPLIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Venue: %s   |   Tipo: %s", r.VenueID, r.Type), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d / 100", r.Score), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: scoreColor(r.Score), Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func summaryRow(r *dto.ComplianceReport) core.Row {
	s := r.Summary
	return row.New(12).Add(
		col.New(6).Add(
			text.New("RESUMEN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Chequeos: %d   |   Alta: %d   |   Media: %d   |   Baja: %d   |   Fallidos: %d",
				s.TotalChecks, s.HighSeverity, s.MediumSeverity, s.LowSeverity, s.FailedChecks),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("PERSONAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}),
			text.New(fmt.Sprintf("Total: %d   |   Activos: %d", r.Staff.Total, r.Staff.Active),
				props.Text{Size: 8, Top: 7, Color: colorGray, Align: align.Right}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func checksHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Chequeo", 4, align.Left),
		h("Severidad", 2, align.Center),
		h("Casos", 1, align.Center),
		h("Detalle", 5, align.Left),
	)
}

func checkRows(checks []entity.ComplianceCheck) []core.Row {
	if len(checks) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin incidencias detectadas.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(checks))
	for _, c := range checks {
		detail := c.Description
		if c.Error != "" {
			detail = "Chequeo fallido: " + c.Error
		} else if len(c.Items) > 0 {
			detail = joinItems(c.Items)
		}
		out = append(out, row.New(7).Add(
			col.New(4).Add(text.New(string(c.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(c.Severity), props.Text{
				Size: 8, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: severityColor(c.Severity),
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(detail, props.Text{Size: 7, Top: 1, Color: colorGray})),
		))
	}
	return out
}

func auditRows(entries []dto.AuditEntryDTO) []core.Row {
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		out = append(out, row.New(5).Add(
			col.New(3).Add(text.New(e.Timestamp.Format("02/01/2006 15:04"), props.Text{Size: 7, Top: 0.5})),
			col.New(4).Add(text.New(e.Action, props.Text{Size: 7, Top: 0.5})),
			col.New(5).Add(text.New(e.ResourceType+" "+e.ResourceID, props.Text{Size: 7, Top: 0.5, Color: colorGray})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func severityColor(s entity.Severity) *props.Color {
	switch s {
	case entity.SeverityHigh, entity.SeverityError:
		return colorHigh
	case entity.SeverityMedium:
		return colorMedium
	default:
		return colorGray
	}
}

func scoreColor(score int) *props.Color {
	switch {
	case score < 60:
		return colorHigh
	case score < 85:
		return colorMedium
	default:
		return colorPrimary
	}
}

// joinItems lista hasta maxItems casos. Ej: "Ana, Luis, +3".
func joinItems(items []string) string {
	if len(items) <= maxItems {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:maxItems], ", ") + fmt.Sprintf(", +%d", len(items)-maxItems)
}
