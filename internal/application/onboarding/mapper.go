package onboarding

import (
	"math"
	"time"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	domainob "github.com/jhoicas/venue-api/internal/domain/onboarding"
)

func toStepTemplateDTO(st entity.StepTemplate) dto.StepTemplateDTO {
	return dto.StepTemplateDTO{
		ID:             st.ID,
		Title:          st.Title,
		Type:           string(st.Type),
		Category:       string(st.Category),
		EstimatedHours: st.EstimatedHours,
		Description:    st.Description,
	}
}

func toStepDTO(s entity.OnboardingStep) dto.StepDTO {
	return dto.StepDTO{
		ID:                 s.ID,
		Title:              s.Title,
		Type:               string(s.Type),
		Category:           string(s.Category),
		EstimatedHours:     s.EstimatedHours,
		Description:        s.Description,
		Instructions:       s.Instructions,
		Required:           s.Required,
		AssignedTo:         s.AssignedTo,
		DependsOn:          nonNil(s.DependsOn),
		DueDate:            s.DueDate,
		Status:             string(s.Status),
		CompletionCriteria: nonNil(s.CompletionCriteria),
		Documents:          nonNil(s.Documents),
		Notes:              s.Notes,
	}
}

func toStepDTOs(steps []entity.OnboardingStep) []dto.StepDTO {
	out := make([]dto.StepDTO, 0, len(steps))
	for _, s := range steps {
		out = append(out, toStepDTO(s))
	}
	return out
}

// fromStepDTO convierte la entrada del cliente; un id vacío recibe uno nuevo.
func fromStepDTO(in dto.StepDTO) entity.OnboardingStep {
	id := in.ID
	if id == "" {
		id = domainob.NewID()
	}
	return entity.OnboardingStep{
		ID:                 id,
		Title:              in.Title,
		Type:               entity.StepType(in.Type),
		Category:           entity.StepCategory(in.Category),
		EstimatedHours:     in.EstimatedHours,
		Description:        in.Description,
		Instructions:       in.Instructions,
		Required:           in.Required,
		AssignedTo:         in.AssignedTo,
		DependsOn:          append([]string{}, in.DependsOn...),
		DueDate:            in.DueDate,
		Status:             entity.StepStatus(in.Status),
		CompletionCriteria: append([]string{}, in.CompletionCriteria...),
		Documents:          append([]string{}, in.Documents...),
		Notes:              in.Notes,
	}
}

func toTemplateResponse(t *entity.OnboardingTemplate) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:                t.ID,
		VenueID:           t.VenueID,
		Name:              t.Name,
		Department:        t.Department,
		Position:          t.Position,
		Description:       t.Description,
		EstimatedDays:     t.EstimatedDays,
		TotalHours:        t.TotalHours(),
		Steps:             toStepDTOs(t.Steps),
		RequiredDocuments: nonNil(t.RequiredDocuments),
		Assignees:         nonNil(t.Assignees),
		Tags:              nonNil(t.Tags),
		IsDefault:         t.IsDefault,
		UseCount:          t.UseCount,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toCandidateResponse(c *entity.Candidate) *dto.CandidateResponse {
	docs := make([]dto.CandidateDocumentDTO, 0, len(c.Documents))
	for _, d := range c.Documents {
		docs = append(docs, dto.CandidateDocumentDTO{Name: d.Name, Status: d.Status, Reference: d.Reference})
	}
	return &dto.CandidateResponse{
		ID:              c.ID,
		VenueID:         c.VenueID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Position:        c.Position,
		Department:      c.Department,
		Status:          string(c.Status),
		Stage:           string(c.Stage),
		ApplicationDate: c.ApplicationDate,
		Skills:          nonNil(c.Skills),
		Documents:       docs,
		AssignedManager: c.AssignedManager,
		StartDate:       c.StartDate,
		EmploymentType:  string(c.EmploymentType),
		RejectionReason: c.RejectionReason,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toProgressResponse(p domainob.Progress) dto.ProgressResponse {
	return dto.ProgressResponse{
		Percent:                math.Round(p.Percent*10) / 10,
		CompletedSteps:         p.CompletedSteps,
		TotalSteps:             p.TotalSteps,
		RemainingHours:         p.RemainingHours,
		EstimatedDaysRemaining: p.EstimatedDaysRemaining,
	}
}

func toSessionResponse(s *entity.OnboardingSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:           s.ID,
		VenueID:      s.VenueID,
		CandidateID:  s.CandidateID,
		TemplateID:   s.TemplateID,
		TemplateName: s.TemplateName,
		Status:       string(s.Status),
		Steps:        toStepDTOs(s.Steps),
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		Version:      s.Version,
		Progress:     toProgressResponse(domainob.ComputeProgress(s)),
	}
}

func toTransitionDTO(ev domainob.StepTransition) dto.StepTransitionDTO {
	return dto.StepTransitionDTO{
		StepID:    ev.StepID,
		StepTitle: ev.StepTitle,
		From:      string(ev.From),
		To:        string(ev.To),
		At:        ev.At,
	}
}

func auditEntry(actor dto.Actor, action, resourceType, resourceID string, details map[string]any, at time.Time) *entity.AuditLogEntry {
	return &entity.AuditLogEntry{
		ID:           domainob.NewID(),
		VenueID:      actor.VenueID,
		UserID:       actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		Timestamp:    at,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
