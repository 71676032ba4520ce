package onboarding_test

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

func step(id string, hours int64, deps ...string) entity.OnboardingStep {
	return entity.OnboardingStep{
		ID:             id,
		Title:          id,
		Type:           entity.StepTypeTask,
		Category:       entity.StepCategoryAdmin,
		EstimatedHours: decimal.NewFromInt(hours),
		Required:       true,
		DependsOn:      deps,
		Status:         entity.StepStatusPending,
	}
}

func template(steps ...entity.OnboardingStep) *entity.OnboardingTemplate {
	return &entity.OnboardingTemplate{
		ID:         "tpl-1",
		VenueID:    "venue-1",
		Name:       "Sound Engineer",
		Department: "Production",
		Position:   "Sound Engineer",
		Steps:      steps,
	}
}
