package onboarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	domainob "github.com/jhoicas/venue-api/internal/domain/onboarding"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

// CandidateUseCase registro de candidatos y su avance por el pipeline.
type CandidateUseCase struct {
	repo repository.CandidateRepository
	tx   repository.TxRunner
	now  func() time.Time
}

// NewCandidateUseCase construye el caso de uso.
func NewCandidateUseCase(repo repository.CandidateRepository, tx repository.TxRunner) *CandidateUseCase {
	return &CandidateUseCase{repo: repo, tx: tx, now: time.Now}
}

// Create registra un candidato en etapa application y estado pending.
func (uc *CandidateUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateCandidateRequest) (*dto.CandidateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	applied := now
	if in.ApplicationDate != nil {
		applied = *in.ApplicationDate
	}
	c := &entity.Candidate{
		ID:              domainob.NewID(),
		VenueID:         actor.VenueID,
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           in.Phone,
		Position:        strings.TrimSpace(in.Position),
		Department:      strings.TrimSpace(in.Department),
		Status:          entity.CandidateStatusPending,
		Stage:           entity.StageApplication,
		ApplicationDate: applied,
		Skills:          append([]string{}, in.Skills...),
		Documents:       []entity.CandidateDocument{},
		AssignedManager: in.AssignedManager,
		StartDate:       in.StartDate,
		EmploymentType:  entity.EmploymentType(in.EmploymentType),
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear candidato: %w", err)
	}
	return toCandidateResponse(c), nil
}

// Get devuelve el candidato de la sede del actor.
func (uc *CandidateUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.CandidateResponse, error) {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toCandidateResponse(c), nil
}

// List lista candidatos filtrando por estado, etapa o departamento.
func (uc *CandidateUseCase) List(ctx context.Context, actor dto.Actor, in dto.CandidateListRequest) (*dto.CandidateListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.CandidateFilter{
		VenueID:    actor.VenueID,
		Status:     entity.CandidateStatus(in.Status),
		Stage:      entity.CandidateStage(in.Stage),
		Department: in.Department,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar candidatos: %w", err)
	}
	items := make([]dto.CandidateResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCandidateResponse(c))
	}
	return &dto.CandidateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// AdvanceStage mueve al candidato de etapa. Los movimientos forzados quedan
// auditados como candidate.stage_forced.
func (uc *CandidateUseCase) AdvanceStage(ctx context.Context, actor dto.Actor, id string, in dto.AdvanceStageRequest) (*dto.StageResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	tr, err := domainob.AdvanceStage(c, entity.CandidateStage(in.Stage), in.Force)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c.UpdatedAt = now

	action := entity.AuditActionStageAdvanced
	if tr.Forced {
		action = entity.AuditActionStageForced
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Candidates.Update(ctx, c); err != nil {
			return domain.AtStep("candidate.update", err)
		}
		entry := auditEntry(actor, action, "candidate", c.ID, map[string]any{
			"from":   string(tr.From),
			"to":     string(tr.To),
			"forced": tr.Forced,
		}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("mover etapa: %w", err)
	}
	return &dto.StageResponse{
		Candidate: *toCandidateResponse(c),
		From:      string(tr.From),
		To:        string(tr.To),
		Forced:    tr.Forced,
	}, nil
}

// Reject marca al candidato como rechazado; etapa, documentos y sesiones se conservan.
func (uc *CandidateUseCase) Reject(ctx context.Context, actor dto.Actor, id string, in dto.RejectCandidateRequest) (*dto.CandidateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := domainob.Reject(c, strings.TrimSpace(in.Reason)); err != nil {
		return nil, err
	}
	now := uc.now()
	c.UpdatedAt = now

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Candidates.Update(ctx, c); err != nil {
			return domain.AtStep("candidate.update", err)
		}
		entry := auditEntry(actor, entity.AuditActionCandidateRejected, "candidate", c.ID,
			map[string]any{"reason": *c.RejectionReason, "stage": string(c.Stage)}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("rechazar candidato: %w", err)
	}
	return toCandidateResponse(c), nil
}

// AttachDocument guarda la referencia devuelta por el almacenamiento de archivos.
// Un documento con el mismo nombre se reemplaza.
func (uc *CandidateUseCase) AttachDocument(ctx context.Context, actor dto.Actor, id string, in dto.AttachDocumentRequest) (*dto.CandidateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = "received"
	}
	doc := entity.CandidateDocument{Name: strings.TrimSpace(in.Name), Status: status, Reference: in.Reference}
	replaced := false
	for i := range c.Documents {
		if c.Documents[i].Name == doc.Name {
			c.Documents[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		c.Documents = append(c.Documents, doc)
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("adjuntar documento: %w", err)
	}
	return toCandidateResponse(c), nil
}

func (uc *CandidateUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Candidate, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener candidato: %w", err)
	}
	if c == nil || c.VenueID != actor.VenueID {
		return nil, domain.NewNotFoundError("candidato", id)
	}
	return c, nil
}
