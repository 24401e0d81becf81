package catalog

import (
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
)

type reportProfileFile struct {
	DefaultOrgSize        string            `toml:"default_org_size"`
	DefaultCostMultiplier float64           `toml:"default_cost_multiplier"`
	RecommendationCount   int               `toml:"recommendation_count"`
	BudgetNotes           []string          `toml:"budget_notes"`
	CostShares            costSharesFile    `toml:"cost_shares"`
	OrgSizes              []orgSizeFile     `toml:"org_size"`
	BudgetPhases          []budgetPhaseFile `toml:"budget_phase"`
}

type costSharesFile struct {
	RegulatoryFines float64 `toml:"regulatory_fines"`
	Reputation      float64 `toml:"reputation"`
	Operational     float64 `toml:"operational"`
}

type orgSizeFile struct {
	ID                   string `toml:"id"`
	Label                string `toml:"label"`
	PatientRange         string `toml:"patient_range"`
	BreachCostBase       int64  `toml:"breach_cost_base"`
	BreachCostPerRecord  int64  `toml:"breach_cost_per_record"`
	AvgRecordsAtRisk     int64  `toml:"avg_records_at_risk"`
	BudgetMin            int64  `toml:"budget_min"`
	BudgetMax            int64  `toml:"budget_max"`
	ImplementationMonths int    `toml:"implementation_months"`
}

type budgetPhaseFile struct {
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Share       float64 `toml:"share"`
	Duration    string  `toml:"duration"`
}

func (f *reportProfileFile) toDomain() *config.ReportProfile {
	p := &config.ReportProfile{
		DefaultOrgSize:        f.DefaultOrgSize,
		DefaultCostMultiplier: f.DefaultCostMultiplier,
		RecommendationCount:   f.RecommendationCount,
		BudgetNotes:           f.BudgetNotes,
		CostShares: config.CostShares{
			RegulatoryFines: f.CostShares.RegulatoryFines,
			Reputation:      f.CostShares.Reputation,
			Operational:     f.CostShares.Operational,
		},
	}

	for _, s := range f.OrgSizes {
		p.OrgSizes = append(p.OrgSizes, config.OrgSize{
			ID:                   s.ID,
			Label:                s.Label,
			PatientRange:         s.PatientRange,
			BreachCostBase:       s.BreachCostBase,
			BreachCostPerRecord:  s.BreachCostPerRecord,
			AvgRecordsAtRisk:     s.AvgRecordsAtRisk,
			Budget:               config.BudgetRange{Min: s.BudgetMin, Max: s.BudgetMax},
			ImplementationMonths: s.ImplementationMonths,
		})
	}
	for _, phase := range f.BudgetPhases {
		p.BudgetPhases = append(p.BudgetPhases, config.BudgetPhase{
			Name:        phase.Name,
			Description: phase.Description,
			Share:       phase.Share,
			Duration:    phase.Duration,
		})
	}

	return p
}
