package compliance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
	"github.com/jhoicas/venue-api/pkg/logger"
)

// Tipos de reporte.
const (
	ReportSummary  = "summary"
	ReportDetailed = "detailed"
	ReportAudit    = "audit"
)

// recommendations lista estática por tipo de chequeo disparado.
var recommendations = map[entity.CheckType]string{
	entity.CheckMissingBackgroundChecks: "Completar la verificación de antecedentes antes del próximo turno asignado.",
	entity.CheckExpiredCertifications:   "Renovar las certificaciones vencidas y retirar al personal afectado de tareas reguladas.",
	entity.CheckIncompleteTraining:      "Programar las capacitaciones pendientes dentro de los próximos 30 días.",
	entity.CheckRetentionPolicy:         "Ejecutar la purga de retención del log de auditoría.",
}

// ComplianceUseCase corre la batería de chequeos, calcula el puntaje y arma reportes.
type ComplianceUseCase struct {
	staff    repository.StaffRepository
	audit    repository.AuditLogRepository
	renderer ReportRenderer
	opts     Options
	log      *logger.Logger
	now      func() time.Time
}

// NewComplianceUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewComplianceUseCase(
	staff repository.StaffRepository,
	audit repository.AuditLogRepository,
	renderer ReportRenderer,
	opts Options,
	log *logger.Logger,
) *ComplianceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ComplianceUseCase{
		staff:    staff,
		audit:    audit,
		renderer: renderer,
		opts:     opts,
		log:      log.Component("compliance"),
		now:      time.Now,
	}
}

type checkFunc func(ctx context.Context, venueID string, now time.Time) (entity.ComplianceCheck, error)

// RunChecks ejecuta los cuatro chequeos en paralelo y los une en orden fijo.
// Un chequeo que no pudo leer sus datos se incluye con severidad error y el
// resto sigue; los chequeos sin incidencias se omiten. Solo falla si el
// contexto expiró.
func (uc *ComplianceUseCase) RunChecks(ctx context.Context, venueID string) (*dto.ComplianceRunResponse, error) {
	now := uc.now().UTC()
	battery := []struct {
		typ      entity.CheckType
		severity entity.Severity
		run      checkFunc
	}{
		{entity.CheckMissingBackgroundChecks, entity.SeverityHigh, uc.missingBackgroundChecks},
		{entity.CheckExpiredCertifications, entity.SeverityHigh, uc.expiredCertifications},
		{entity.CheckIncompleteTraining, entity.SeverityMedium, uc.incompleteTraining},
		{entity.CheckRetentionPolicy, entity.SeverityLow, uc.retentionPolicy},
	}

	type result struct {
		idx   int
		check entity.ComplianceCheck
		err   error
	}
	results := make(chan result, len(battery))
	for i, b := range battery {
		go func(i int, run checkFunc) {
			check, err := run(ctx, venueID, now)
			results <- result{idx: i, check: check, err: err}
		}(i, b.run)
	}

	ordered := make([]result, len(battery))
	for range battery {
		r := <-results
		ordered[r.idx] = r
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &domain.TimeoutError{Op: "compliance.run_checks", Err: ctx.Err()}
	}

	out := &dto.ComplianceRunResponse{Checks: []entity.ComplianceCheck{}}
	for i, r := range ordered {
		check := r.check
		if r.err != nil {
			uc.log.Warn().Err(r.err).Str("venue_id", venueID).Str("check", string(battery[i].typ)).
				Msg("chequeo de cumplimiento falló; se reporta con severidad error")
			check = entity.ComplianceCheck{
				Type:        battery[i].typ,
				Severity:    entity.SeverityError,
				Description: "No se pudieron leer los datos del chequeo",
				Items:       []string{},
				Error:       r.err.Error(),
			}
		} else {
			if check.Count == 0 {
				continue
			}
			check.Type = battery[i].typ
			check.Severity = battery[i].severity
		}
		out.Checks = append(out.Checks, check)
		switch check.Severity {
		case entity.SeverityHigh:
			out.HighSeverity++
		case entity.SeverityMedium:
			out.MediumSeverity++
		case entity.SeverityLow:
			out.LowSeverity++
		case entity.SeverityError:
			out.FailedChecks++
		}
	}
	out.TotalChecks = len(out.Checks)
	return out, nil
}

func (uc *ComplianceUseCase) missingBackgroundChecks(ctx context.Context, venueID string, _ time.Time) (entity.ComplianceCheck, error) {
	staff, err := uc.staff.ListMissingBackgroundChecks(ctx, venueID)
	if err != nil {
		return entity.ComplianceCheck{}, err
	}
	items := make([]string, 0, len(staff))
	for _, s := range staff {
		items = append(items, fmt.Sprintf("%s (%s)", s.Name, s.BackgroundCheckStatus))
	}
	return entity.ComplianceCheck{
		Description: "Staff activo sin verificación de antecedentes aprobada",
		Count:       len(items),
		Items:       items,
	}, nil
}

func (uc *ComplianceUseCase) expiredCertifications(ctx context.Context, venueID string, now time.Time) (entity.ComplianceCheck, error) {
	certs, err := uc.staff.ListExpiredCertifications(ctx, venueID, now)
	if err != nil {
		return entity.ComplianceCheck{}, err
	}
	items := make([]string, 0, len(certs))
	for _, c := range certs {
		items = append(items, fmt.Sprintf("%s: %s (vencida %s)", c.StaffName, c.Certification, c.ExpiredAt.Format("2006-01-02")))
	}
	return entity.ComplianceCheck{
		Description: "Certificaciones vencidas en staff activo",
		Count:       len(items),
		Items:       items,
	}, nil
}

func (uc *ComplianceUseCase) incompleteTraining(ctx context.Context, venueID string, _ time.Time) (entity.ComplianceCheck, error) {
	staff, err := uc.staff.ListIncompleteTraining(ctx, venueID)
	if err != nil {
		return entity.ComplianceCheck{}, err
	}
	items := make([]string, 0, len(staff))
	for _, s := range staff {
		items = append(items, s.Name)
	}
	return entity.ComplianceCheck{
		Description: "Staff activo con capacitación obligatoria pendiente",
		Count:       len(items),
		Items:       items,
	}, nil
}

func (uc *ComplianceUseCase) retentionPolicy(ctx context.Context, venueID string, now time.Time) (entity.ComplianceCheck, error) {
	cutoff := now.AddDate(0, 0, -uc.opts.RetentionDays)
	n, err := uc.audit.CountOlderThan(ctx, venueID, cutoff)
	if err != nil {
		return entity.ComplianceCheck{}, err
	}
	return entity.ComplianceCheck{
		Description: fmt.Sprintf("Entradas de auditoría con más de %d días", uc.opts.RetentionDays),
		Count:       n,
		Items:       []string{},
	}, nil
}

// Score 100 - HighWeight*chequeos altos - IssueWeight*incidencias, acotado a [0,100].
// Los chequeos fallidos no restan: no aportan incidencias conocidas.
func Score(checks []entity.ComplianceCheck, opts Options) int {
	high, issues := 0, 0
	for _, c := range checks {
		switch c.Severity {
		case entity.SeverityHigh:
			high++
			issues += c.Count
		case entity.SeverityMedium, entity.SeverityLow:
			issues += c.Count
		case entity.SeverityError:
		}
	}
	score := 100 - opts.HighWeight*high - opts.IssueWeight*issues
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ComplianceScore corre los chequeos y devuelve el puntaje resultante.
func (uc *ComplianceUseCase) ComplianceScore(ctx context.Context, venueID string) (*dto.ScoreResponse, error) {
	run, err := uc.RunChecks(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return &dto.ScoreResponse{Score: Score(run.Checks, uc.opts), Checks: run.Checks}, nil
}

// GenerateReport compone chequeos, puntaje, conteos de staff, recomendaciones y
// (salvo en summary) las entradas recientes de auditoría.
func (uc *ComplianceUseCase) GenerateReport(ctx context.Context, venueID, reportType string) (*dto.ComplianceReport, error) {
	if reportType == "" {
		reportType = ReportSummary
	}
	switch reportType {
	case ReportSummary, ReportDetailed, ReportAudit:
	default:
		return nil, domain.NewValidationError("tipo de reporte inválido", "type")
	}

	run, err := uc.RunChecks(ctx, venueID)
	if err != nil {
		return nil, err
	}
	counts, err := uc.staff.Counts(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("reporte: conteo de staff: %w", err)
	}
	if counts.ByRole == nil {
		counts.ByRole = map[string]int{}
	}

	report := &dto.ComplianceReport{
		VenueID:         venueID,
		Type:            reportType,
		GeneratedAt:     uc.now().UTC(),
		Score:           Score(run.Checks, uc.opts),
		Summary:         *run,
		Staff:           counts,
		Recommendations: []string{},
	}
	for _, c := range run.Checks {
		if c.Severity == entity.SeverityError {
			continue
		}
		if rec, ok := recommendations[c.Type]; ok {
			report.Recommendations = append(report.Recommendations, rec)
		}
	}

	if reportType != ReportSummary {
		entries, err := uc.audit.Recent(ctx, venueID, uc.opts.RecentAuditLimit)
		if err != nil {
			return nil, fmt.Errorf("reporte: auditoría reciente: %w", err)
		}
		report.RecentAudit = toAuditDTOs(entries)
	}
	return report, nil
}

// RenderReport genera el reporte y lo convierte con el renderer configurado.
func (uc *ComplianceUseCase) RenderReport(ctx context.Context, venueID, reportType string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, errors.New("compliance: renderer de reportes no configurado")
	}
	report, err := uc.GenerateReport(ctx, venueID, reportType)
	if err != nil {
		return nil, err
	}
	doc, err := uc.renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("reporte: render: %w", err)
	}
	return doc, nil
}
