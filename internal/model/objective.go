package model

// Objective names a champion slot in OptimalScenarios.
// Keep these values stable; they are used in API responses.
type Objective string

const (
	ObjectiveBestNPV            Objective = "best_npv"
	ObjectiveBestIRR            Objective = "best_irr"
	ObjectiveMaxSelfSufficiency Objective = "max_self_sufficiency"
	ObjectiveFastestPayback     Objective = "fastest_payback"
)

// Objectives lists every objective in cross-objective priority order.
func Objectives() []Objective {
	return []Objective{
		ObjectiveBestNPV,
		ObjectiveBestIRR,
		ObjectiveMaxSelfSufficiency,
		ObjectiveFastestPayback,
	}
}

// OptimalScenarios holds one champion per objective. A nil slot means no candidate
// qualified. The same run may fill several slots.
type OptimalScenarios struct {
	BestNPV            *SimulationRun `json:"best_npv"`
	BestIRR            *SimulationRun `json:"best_irr"`
	MaxSelfSufficiency *SimulationRun `json:"max_self_sufficiency"`
	FastestPayback     *SimulationRun `json:"fastest_payback"`
}

func (s OptimalScenarios) Champion(o Objective) *SimulationRun {
	switch o {
	case ObjectiveBestNPV:
		return s.BestNPV
	case ObjectiveBestIRR:
		return s.BestIRR
	case ObjectiveMaxSelfSufficiency:
		return s.MaxSelfSufficiency
	case ObjectiveFastestPayback:
		return s.FastestPayback
	default:
		return nil
	}
}

func (s *OptimalScenarios) set(o Objective, r *SimulationRun) {
	switch o {
	case ObjectiveBestNPV:
		s.BestNPV = r
	case ObjectiveBestIRR:
		s.BestIRR = r
	case ObjectiveMaxSelfSufficiency:
		s.MaxSelfSufficiency = r
	case ObjectiveFastestPayback:
		s.FastestPayback = r
	}
}

// WithChampion returns a copy of s with the slot for o set to r.
func (s OptimalScenarios) WithChampion(o Objective, r *SimulationRun) OptimalScenarios {
	s.set(o, r)
	return s
}
