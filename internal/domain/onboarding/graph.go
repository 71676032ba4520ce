package onboarding

import "github.com/jhoicas/venue-api/internal/domain/entity"

// FindCycle busca un ciclo en el grafo dependsOn. Devuelve el camino cerrado
// (p.ej. [A B C A]) o nil si el grafo es acíclico. Referencias a ids fuera de
// steps se ignoran; las reporta UnknownDependencies.
func FindCycle(steps []entity.OnboardingStep) []string {
	const (
		white = iota
		gray
		black
	)
	deps := make(map[string][]string, len(steps))
	for _, s := range steps {
		deps[s.ID] = s.DependsOn
	}
	color := make(map[string]int, len(steps))
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, dep := range deps[id] {
			if _, known := deps[dep]; !known {
				continue
			}
			switch color[dep] {
			case gray:
				for i, v := range stack {
					if v == dep {
						cycle = append(append([]string{}, stack[i:]...), dep)
						return true
					}
				}
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, s := range steps {
		if color[s.ID] == white && visit(s.ID) {
			return cycle
		}
	}
	return nil
}

// UnknownDependencies lista "paso->dep" para cada dependencia que no apunta a un paso de steps.
func UnknownDependencies(steps []entity.OnboardingStep) []string {
	ids := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		ids[s.ID] = struct{}{}
	}
	var out []string
	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if _, ok := ids[dep]; !ok {
				out = append(out, s.ID+"->"+dep)
			}
		}
	}
	return out
}

// DuplicateStepIDs devuelve, una vez cada uno y en orden de aparición, los ids
// que se repiten en steps. "" cuenta como id.
func DuplicateStepIDs(steps []entity.OnboardingStep) []string {
	seen := make(map[string]int, len(steps))
	var out []string
	for _, s := range steps {
		seen[s.ID]++
		if seen[s.ID] == 2 {
			out = append(out, s.ID)
		}
	}
	return out
}
