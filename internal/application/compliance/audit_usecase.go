package compliance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

// Sub-pasos de Purge, reportados en StorageError.Op.
const (
	OpAuditPurge  = "audit.purge"
	OpAuditInsert = "audit.insert"
)

// AuditUseCase registro y consulta del log de auditoría (append-only).
type AuditUseCase struct {
	repo          repository.AuditLogRepository
	tx            repository.TxRunner
	retentionDays int
	now           func() time.Time
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository, tx repository.TxRunner, opts Options) *AuditUseCase {
	return &AuditUseCase{repo: repo, tx: tx, retentionDays: opts.RetentionDays, now: time.Now}
}

// Record persiste la entrada asignando id y timestamp si vienen vacíos.
// Los fallos del almacenamiento se propagan, nunca se descartan.
func (uc *AuditUseCase) Record(ctx context.Context, e *entity.AuditLogEntry) (*entity.AuditLogEntry, error) {
	if err := uc.complete(e); err != nil {
		return nil, err
	}
	if err := uc.repo.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("registrar auditoría: %w", err)
	}
	return e, nil
}

func (uc *AuditUseCase) complete(e *entity.AuditLogEntry) error {
	if strings.TrimSpace(e.Action) == "" || strings.TrimSpace(e.ResourceType) == "" {
		return domain.NewValidationError("acción y tipo de recurso son obligatorios", "action", "resource_type")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = uc.now().UTC()
	}
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	return nil
}

// RecordRequest registra una acción reportada por la UI en nombre del actor.
func (uc *AuditUseCase) RecordRequest(ctx context.Context, actor dto.Actor, in dto.RecordAuditRequest) (*dto.AuditEntryDTO, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.Record(ctx, &entity.AuditLogEntry{
		VenueID:      actor.VenueID,
		UserID:       actor.UserID,
		Action:       in.Action,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		Details:      in.Details,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	out := toAuditDTO(*e)
	return &out, nil
}

// Query consulta el log de la sede del actor, más recientes primero.
func (uc *AuditUseCase) Query(ctx context.Context, actor dto.Actor, in dto.AuditQueryRequest) (*dto.AuditQueryResponse, error) {
	in.DefaultPage()
	from, err := parseTime("from", in.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTime("to", in.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.NewValidationError("rango de fechas invertido", "from", "to")
	}
	entries, total, err := uc.repo.Query(ctx, repository.AuditFilter{
		VenueID:      actor.VenueID,
		UserID:       in.UserID,
		Action:       in.Action,
		ResourceType: in.ResourceType,
		From:         from,
		To:           to,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("consultar auditoría: %w", err)
	}
	return &dto.AuditQueryResponse{
		Entries:    toAuditDTOs(entries),
		TotalCount: total,
		Page:       dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Purge aplica la política de retención: borra las entradas de la sede más
// antiguas que olderThanDays (0 = ventana configurada) y registra la purga. El
// borrado y su entrada de auditoría se confirman juntos o no se confirman.
func (uc *AuditUseCase) Purge(ctx context.Context, actor dto.Actor, olderThanDays int) (*dto.PurgeResponse, error) {
	if olderThanDays < 0 {
		return nil, domain.NewValidationError("older_than_days no puede ser negativo", "older_than_days")
	}
	if olderThanDays == 0 {
		olderThanDays = uc.retentionDays
	}
	now := uc.now().UTC()
	cutoff := now.AddDate(0, 0, -olderThanDays)

	var deleted int64
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		n, err := repos.Audit.PurgeOlderThan(ctx, actor.VenueID, cutoff)
		if err != nil {
			return domain.AtStep(OpAuditPurge, err)
		}
		entry := &entity.AuditLogEntry{
			VenueID:      actor.VenueID,
			UserID:       actor.UserID,
			Action:       entity.AuditActionRetentionPurge,
			ResourceType: "audit_log",
			Details:      map[string]any{"deleted": n, "cutoff": cutoff.Format(time.RFC3339)},
			Timestamp:    now,
			IPAddress:    actor.IPAddress,
			UserAgent:    actor.UserAgent,
		}
		if err := uc.complete(entry); err != nil {
			return err
		}
		if err := repos.Audit.Insert(ctx, entry); err != nil {
			return domain.AtStep(OpAuditInsert, err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("purgar auditoría: %w", err)
	}
	return &dto.PurgeResponse{Deleted: deleted, Cutoff: cutoff}, nil
}

func parseTime(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida, se espera RFC3339", field)
	}
	return &t, nil
}

func toAuditDTO(e entity.AuditLogEntry) dto.AuditEntryDTO {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	return dto.AuditEntryDTO{
		ID:           e.ID,
		VenueID:      e.VenueID,
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      details,
		Timestamp:    e.Timestamp,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
	}
}

func toAuditDTOs(list []entity.AuditLogEntry) []dto.AuditEntryDTO {
	out := make([]dto.AuditEntryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, toAuditDTO(e))
	}
	return out
}
