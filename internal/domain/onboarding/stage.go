package onboarding

import (
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// stageOrder secuencia de avance del pipeline de candidatos.
var stageOrder = []entity.CandidateStage{
	entity.StageApplication,
	entity.StageInterview,
	entity.StageBackgroundCheck,
	entity.StageDocumentation,
	entity.StageTraining,
	entity.StageCompleted,
}

// StageTransition resultado de mover a un candidato de etapa.
type StageTransition struct {
	From   entity.CandidateStage `json:"from"`
	To     entity.CandidateStage `json:"to"`
	Forced bool                  `json:"forced"`
}

func stageIndex(s entity.CandidateStage) int {
	for i, v := range stageOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// IsForwardStep informa si to es exactamente la etapa siguiente a from.
func IsForwardStep(from, to entity.CandidateStage) bool {
	i, j := stageIndex(from), stageIndex(to)
	return i >= 0 && j == i+1
}

// AdvanceStage mueve al candidato a la etapa to. Sin force solo se admite avanzar
// una etapa y nunca sobre un candidato rechazado. Los movimientos forzados
// reabren al candidato (status in_progress) y quedan marcados en el resultado.
func AdvanceStage(c *entity.Candidate, to entity.CandidateStage, force bool) (StageTransition, error) {
	if !to.Valid() {
		return StageTransition{}, domain.NewValidationError("etapa inválida", string(to))
	}
	from := c.Stage
	allowed := IsForwardStep(from, to) && c.Status != entity.CandidateStatusRejected
	if !allowed && !force {
		return StageTransition{}, &domain.InvalidStageTransitionError{From: string(from), To: string(to)}
	}

	c.Stage = to
	if to == entity.StageCompleted {
		c.Status = entity.CandidateStatusCompleted
	} else {
		c.Status = entity.CandidateStatusInProgress
	}
	c.RejectionReason = nil
	return StageTransition{From: from, To: to, Forced: !allowed}, nil
}

// Reject marca al candidato como rechazado conservando etapa, documentos y sesiones.
func Reject(c *entity.Candidate, reason string) error {
	if c.Status == entity.CandidateStatusRejected {
		return domain.NewValidationError("el candidato ya fue rechazado", c.ID)
	}
	c.Status = entity.CandidateStatusRejected
	r := reason
	c.RejectionReason = &r
	return nil
}
