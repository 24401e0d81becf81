package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// BudgetRange is a min/max amount in US dollars
type BudgetRange struct {
	Min int64
	Max int64
}

// OrgSize describes an organization size class used for cost and budget projections
type OrgSize struct {
	ID                   string
	Label                string
	PatientRange         string
	BreachCostBase       int64
	BreachCostPerRecord  int64
	AvgRecordsAtRisk     int64
	Budget               BudgetRange
	ImplementationMonths int
}

// CostShares are the fractions of the estimated breach cost attributed to secondary costs
type CostShares struct {
	RegulatoryFines float64
	Reputation      float64
	Operational     float64
}

// BudgetPhase is one phase of the migration budget
type BudgetPhase struct {
	Name        string
	Description string
	Share       float64
	Duration    string // Empty means the duration follows the implementation timeline
}

// ReportProfile holds the static content used to build report projections
type ReportProfile struct {
	OrgSizes              []OrgSize
	DefaultOrgSize        string
	DefaultCostMultiplier float64
	CostShares            CostShares
	BudgetPhases          []BudgetPhase
	BudgetNotes           []string
	RecommendationCount   int
}

// OrgSize returns the size class for the answer, falling back to the default class
func (p *ReportProfile) OrgSize(id string) *OrgSize {
	for i := range p.OrgSizes {
		if p.OrgSizes[i].ID == id {
			return &p.OrgSizes[i]
		}
	}
	for i := range p.OrgSizes {
		if p.OrgSizes[i].ID == p.DefaultOrgSize {
			return &p.OrgSizes[i]
		}
	}
	return nil
}

// Validate checks the report profile
func (p *ReportProfile) Validate() error {
	if len(p.OrgSizes) == 0 {
		return goerr.Wrap(ErrInvalidReport, "no organization size is defined")
	}
	seen := make(map[string]bool)
	for _, s := range p.OrgSizes {
		if s.ID == "" || s.Label == "" {
			return goerr.Wrap(ErrMissingName, "organization size ID and label are required", goerr.V("id", s.ID))
		}
		if seen[s.ID] {
			return goerr.Wrap(ErrInvalidReport, "organization size defined twice", goerr.V("id", s.ID))
		}
		seen[s.ID] = true
		if s.Budget.Min <= 0 || s.Budget.Max < s.Budget.Min {
			return goerr.Wrap(ErrInvalidReport, "invalid budget range", goerr.V("id", s.ID))
		}
		if s.ImplementationMonths <= 0 {
			return goerr.Wrap(ErrInvalidReport, "implementation months must be positive", goerr.V("id", s.ID))
		}
	}
	if !seen[p.DefaultOrgSize] {
		return goerr.Wrap(ErrInvalidReport, "default organization size is not defined",
			goerr.V("default", p.DefaultOrgSize))
	}

	var total float64
	for _, phase := range p.BudgetPhases {
		if phase.Share <= 0 {
			return goerr.Wrap(ErrInvalidReport, "budget phase share must be positive", goerr.V("phase", phase.Name))
		}
		total += phase.Share
	}
	if len(p.BudgetPhases) > 0 && math.Abs(total-1) > WeightTolerance {
		return goerr.Wrap(ErrInvalidReport, "budget phase shares must sum to 1", goerr.V(WeightSumKey, total))
	}
	if p.RecommendationCount <= 0 {
		return goerr.Wrap(ErrInvalidReport, "recommendation count must be positive")
	}
	return nil
}
