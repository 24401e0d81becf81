package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
	"github.com/secmon-lab/qrisk/pkg/scoring"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultOrganizationName is used when neither the report request nor the assessment names one
const DefaultOrganizationName = "Your Organization"

// Severity labels of the risk breakdown
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityModerate = "Moderate"
	SeverityLow      = "Low"
)

// Money is an amount in US dollars with its en-US rendering
type Money struct {
	Amount    int64  `json:"amount"`
	Formatted string `json:"formatted"`
}

type OrgSizeView struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	PatientRange string `json:"patient_range"`
}

type ExecutiveSummary struct {
	Score       int      `json:"score"`
	MaxScore    int      `json:"max_score"`
	Level       string   `json:"level"`
	Color       string   `json:"color"`
	Urgency     string   `json:"urgency"`
	Summary     string   `json:"summary"`
	KeyFindings []string `json:"key_findings"`
}

type BreakdownItem struct {
	Rank       int              `json:"rank"`
	QuestionID types.QuestionID `json:"question_id"`
	Category   string           `json:"category"`
	Question   string           `json:"question"`
	Score      int              `json:"score"`
	MaxScore   int              `json:"max_score"`
	Severity   string           `json:"severity"`
}

type CostProjection struct {
	Multiplier      float64 `json:"multiplier"`
	BreachCost      Money   `json:"breach_cost"`
	RegulatoryFines Money   `json:"regulatory_fines"`
	Reputation      Money   `json:"reputation"`
	Operational     Money   `json:"operational"`
	Total           Money   `json:"total"`
	RecordsAtRisk   int64   `json:"records_at_risk"`
	RecordsLabel    string  `json:"records_label"`
	CostPerRecord   Money   `json:"cost_per_record"`
}

type PhaseEstimate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Min         Money  `json:"min"`
	Max         Money  `json:"max"`
	Duration    string `json:"duration"`
}

type ROI struct {
	CostAvoidance   Money  `json:"cost_avoidance"`
	InvestmentRange string `json:"investment_range"`
	Multiple        string `json:"multiple"`
}

type BudgetEstimate struct {
	Phases   []PhaseEstimate `json:"phases"`
	Min      Money           `json:"min"`
	Max      Money           `json:"max"`
	Duration string          `json:"duration"`
	Notes    []string        `json:"notes"`
	ROI      ROI             `json:"roi"`
}

type RecommendationItem struct {
	Rank            int              `json:"rank"`
	Category        types.CategoryID `json:"category"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Actions         []string         `json:"actions"`
	Priority        string           `json:"priority,omitempty"`
	QuestionContext string           `json:"question_context,omitempty"`
	CurrentScore    *int             `json:"current_score,omitempty"`
	MaxScore        int              `json:"max_score,omitempty"`
}

// Report is the structured content of an executive briefing
type Report struct {
	AssessmentID       model.AssessmentID    `json:"assessment_id"`
	Organization       string                `json:"organization"`
	CatalogName        string                `json:"catalog_name"`
	CatalogVersion     string                `json:"catalog_version"`
	AssessedAt         time.Time             `json:"assessed_at"`
	GeneratedAt        time.Time             `json:"generated_at"`
	OrgSize            OrgSizeView           `json:"org_size"`
	Summary            ExecutiveSummary      `json:"summary"`
	CategoryScores     []model.CategoryScore `json:"category_scores"`
	Breakdown          []BreakdownItem       `json:"breakdown"`
	Costs              CostProjection        `json:"costs"`
	Budget             BudgetEstimate        `json:"budget"`
	Recommendations    []RecommendationItem  `json:"recommendations"`
	Benchmark          *scoring.Comparison   `json:"benchmark,omitempty"`
	DefaultedQuestions []types.QuestionID    `json:"defaulted_questions,omitempty"`
}

type ReportUseCase struct {
	repo    interfaces.Repository
	engine  *scoring.Engine
	profile *config.ReportProfile
	archive interfaces.ReportArchive
	now     func() time.Time
	printer *message.Printer
}

func NewReportUseCase(repo interfaces.Repository, engine *scoring.Engine, profile *config.ReportProfile, archive interfaces.ReportArchive, now func() time.Time) *ReportUseCase {
	return &ReportUseCase{
		repo:    repo,
		engine:  engine,
		profile: profile,
		archive: archive,
		now:     now,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// loadCurrent returns the assessment only when it was scored against the loaded catalog version
func (uc *ReportUseCase) loadCurrent(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	a, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}

	c := uc.engine.Catalog()
	if a.CatalogName != c.Name {
		return nil, goerr.Wrap(ErrCatalogMismatch, "assessment belongs to another catalog",
			goerr.V(AssessmentIDKey, id),
			goerr.V(StoredCatalogKey, a.CatalogName),
			goerr.V(CatalogNameKey, c.Name))
	}
	if a.CatalogVersion != c.Version {
		return nil, goerr.Wrap(ErrCatalogVersionMismatch, "rescore the assessment before building a report",
			goerr.V(AssessmentIDKey, id),
			goerr.V(StoredVersionKey, a.CatalogVersion),
			goerr.V(CatalogVersionKey, c.Version))
	}
	return a, nil
}

// Build re-derives the result from the stored responses and renders the report content.
// The organization argument overrides the name stored with the assessment.
func (uc *ReportUseCase) Build(ctx context.Context, id model.AssessmentID, organization string) (*Report, error) {
	if uc.profile == nil {
		return nil, goerr.New("report profile is not configured")
	}

	a, err := uc.loadCurrent(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.Score(a.Responses)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to score stored responses", goerr.V(AssessmentIDKey, id))
	}
	if defaulted := result.DefaultedQuestions(); len(defaulted) > 0 {
		logging.From(ctx).Warn("answers fell back to the question minimum",
			"id", id, "questions", defaulted)
	}

	tier, ok := uc.engine.Tier(result)
	if !ok {
		return nil, goerr.Wrap(config.ErrTierCoverage, "no risk tier for score",
			goerr.V(AssessmentIDKey, id), goerr.V("score", result.TotalScore))
	}

	orgName := organization
	if orgName == "" {
		orgName = a.Organization
	}
	if orgName == "" {
		orgName = DefaultOrganizationName
	}

	c := uc.engine.Catalog()
	size := uc.profile.OrgSize(uc.orgSizeAnswer(c, a.Responses))
	if size == nil {
		return nil, goerr.Wrap(config.ErrInvalidReport, "no organization size profile", goerr.V(AssessmentIDKey, id))
	}

	summaryText, err := renderSummary(tier, orgName, result)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render executive summary", goerr.V("tier", tier.Label))
	}

	recommendations := uc.recommendations(c, result.WeakestAreas)
	costs := uc.costs(size, tier)

	report := &Report{
		AssessmentID:   a.ID,
		Organization:   orgName,
		CatalogName:    c.Name,
		CatalogVersion: c.Version,
		AssessedAt:     a.CreatedAt,
		GeneratedAt:    uc.now(),
		OrgSize: OrgSizeView{
			ID:           size.ID,
			Label:        size.Label,
			PatientRange: size.PatientRange,
		},
		Summary: ExecutiveSummary{
			Score:    result.TotalScore,
			MaxScore: c.Scheme.ScoreMax,
			Level:    result.RiskLevel,
			Color:    result.RiskColor,
			Urgency:  result.Urgency,
			Summary:  summaryText,
		},
		CategoryScores:     result.CategoryScores,
		Breakdown:          uc.breakdown(c, result.WeakestAreas),
		Costs:              costs,
		Budget:             uc.budget(size, costs.Total.Amount),
		Recommendations:    recommendations,
		DefaultedQuestions: result.DefaultedQuestions(),
	}
	report.Summary.KeyFindings = uc.keyFindings(report)

	if c.Benchmark != nil {
		report.Benchmark = scoring.Compare(c.Scheme, c.Benchmark, result.CategoryScores, result.TotalScore)
	}

	return report, nil
}

// Archive stores the report as JSON and returns its location
func (uc *ReportUseCase) Archive(ctx context.Context, report *Report) (string, error) {
	if uc.archive == nil {
		return "", goerr.Wrap(ErrArchiveNotConfigured, "cannot archive report",
			goerr.V(AssessmentIDKey, report.AssessmentID))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal report", goerr.V(AssessmentIDKey, report.AssessmentID))
	}

	name := fmt.Sprintf("%s-%s.json", report.AssessmentID, report.GeneratedAt.UTC().Format("20060102T150405Z"))
	location, err := uc.archive.Put(ctx, name, data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to archive report", goerr.V(AssessmentIDKey, report.AssessmentID))
	}

	logging.From(ctx).Info("report archived", "id", report.AssessmentID, "location", location)
	return location, nil
}

func (uc *ReportUseCase) orgSizeAnswer(c *config.Catalog, rs model.ResponseSet) string {
	if c.Report.OrgSizeQuestion == "" {
		return uc.profile.DefaultOrgSize
	}
	v, ok := model.LookupResponse(rs, string(c.Report.OrgSizeQuestion))
	if !ok {
		return uc.profile.DefaultOrgSize
	}
	id, ok := model.AsSingle(v)
	if !ok {
		return uc.profile.DefaultOrgSize
	}
	return string(id)
}

func (uc *ReportUseCase) money(amount int64) Money {
	return Money{Amount: amount, Formatted: uc.printer.Sprintf("$%d", amount)}
}

func roundShare(amount int64, share float64) int64 {
	return int64(math.Round(float64(amount) * share))
}

func (uc *ReportUseCase) costs(size *config.OrgSize, tier config.RiskTier) CostProjection {
	multiplier := tier.CostMultiplier
	if multiplier == 0 {
		multiplier = uc.profile.DefaultCostMultiplier
	}

	base := size.BreachCostBase + size.BreachCostPerRecord*size.AvgRecordsAtRisk
	breach := roundShare(base, multiplier)
	shares := uc.profile.CostShares
	fines := roundShare(breach, shares.RegulatoryFines)
	reputation := roundShare(breach, shares.Reputation)
	operational := roundShare(breach, shares.Operational)

	return CostProjection{
		Multiplier:      multiplier,
		BreachCost:      uc.money(breach),
		RegulatoryFines: uc.money(fines),
		Reputation:      uc.money(reputation),
		Operational:     uc.money(operational),
		Total:           uc.money(breach + fines + reputation + operational),
		RecordsAtRisk:   size.AvgRecordsAtRisk,
		RecordsLabel:    uc.printer.Sprintf("%d", size.AvgRecordsAtRisk),
		CostPerRecord:   uc.money(size.BreachCostPerRecord),
	}
}

func (uc *ReportUseCase) budget(size *config.OrgSize, potentialCost int64) BudgetEstimate {
	months := size.ImplementationMonths

	var phases []PhaseEstimate
	for _, p := range uc.profile.BudgetPhases {
		duration := p.Duration
		if duration == "" {
			duration = fmt.Sprintf("%d-%d months", int(math.Round(0.7*float64(months))), months)
		}
		phases = append(phases, PhaseEstimate{
			Name:        p.Name,
			Description: p.Description,
			Min:         uc.money(roundShare(size.Budget.Min, p.Share)),
			Max:         uc.money(roundShare(size.Budget.Max, p.Share)),
			Duration:    duration,
		})
	}

	minBudget, maxBudget := uc.money(size.Budget.Min), uc.money(size.Budget.Max)
	return BudgetEstimate{
		Phases:   phases,
		Min:      minBudget,
		Max:      maxBudget,
		Duration: fmt.Sprintf("%d-%d months", months, int(math.Round(1.5*float64(months)))),
		Notes:    uc.profile.BudgetNotes,
		ROI: ROI{
			CostAvoidance:   uc.money(potentialCost),
			InvestmentRange: minBudget.Formatted + " - " + maxBudget.Formatted,
			Multiple: fmt.Sprintf("%dx - %dx",
				int64(math.Round(float64(potentialCost)/float64(size.Budget.Max))),
				int64(math.Round(float64(potentialCost)/float64(size.Budget.Min)))),
		},
	}
}

// recommendations picks one recommendation per category in weak-area order and fills the
// remaining slots from the catalog's fallback categories
func (uc *ReportUseCase) recommendations(c *config.Catalog, areas []model.WeakArea) []RecommendationItem {
	limit := uc.profile.RecommendationCount
	used := make(map[types.CategoryID]bool)
	var items []RecommendationItem

	add := func(cat *config.Category, area *model.WeakArea) {
		rec := cat.Recommendation
		item := RecommendationItem{
			Rank:        len(items) + 1,
			Category:    cat.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Actions:     rec.Actions,
			Priority:    rec.Priority,
		}
		if area != nil {
			points := area.Points
			item.CurrentScore = &points
			if area.Question != nil {
				item.QuestionContext = area.Question.Text
				item.MaxScore = c.MaxScoreFor(area.Question)
			}
		}
		used[cat.ID] = true
		items = append(items, item)
	}

	for i := range areas {
		if len(items) >= limit {
			return items
		}
		cat, err := c.Category(areas[i].Category)
		if err != nil || cat.Recommendation == nil || used[cat.ID] {
			continue
		}
		add(cat, &areas[i])
	}

	for _, id := range c.Report.FallbackCategories {
		if len(items) >= limit {
			break
		}
		cat, err := c.Category(id)
		if err != nil || cat.Recommendation == nil || used[cat.ID] {
			continue
		}
		add(cat, nil)
	}
	return items
}

// Severity grades how far the points sit toward the worst end of the question range
func Severity(s config.Scheme, points int) string {
	span := float64(s.QuestionMax - s.QuestionMin)
	if span <= 0 {
		return SeverityLow
	}
	toward := float64(points-s.QuestionMin) / span
	if s.Polarity == types.PolarityReadiness {
		toward = 1 - toward
	}

	switch {
	case toward >= 0.8:
		return SeverityCritical
	case toward >= 0.6:
		return SeverityHigh
	case toward >= 0.4:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

func (uc *ReportUseCase) breakdown(c *config.Catalog, areas []model.WeakArea) []BreakdownItem {
	items := make([]BreakdownItem, 0, len(areas))
	for i, area := range areas {
		item := BreakdownItem{
			Rank:       i + 1,
			QuestionID: area.QuestionID,
			Category:   strings.ToUpper(strings.ReplaceAll(string(area.Category), "_", " ")),
			Score:      area.Points,
			MaxScore:   c.Scheme.QuestionMax,
			Severity:   Severity(c.Scheme, area.Points),
		}
		if cat, err := c.Category(area.Category); err == nil && cat.Name != "" {
			item.Category = strings.ToUpper(cat.Name)
		}
		if area.Question != nil {
			item.Question = area.Question.Text
		}
		items = append(items, item)
	}
	return items
}

type summaryData struct {
	Organization string
	Score        int
	Level        string
}

func renderSummary(tier config.RiskTier, organization string, result *model.AssessmentResult) (string, error) {
	if tier.Summary == "" {
		return fmt.Sprintf("%s scored %d, placing it in the %s category.",
			organization, result.TotalScore, result.RiskLevel), nil
	}

	tmpl, err := template.New(tier.Label).Parse(tier.Summary)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse summary template")
	}

	var buf bytes.Buffer
	data := summaryData{Organization: organization, Score: result.TotalScore, Level: result.RiskLevel}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute summary template")
	}
	return buf.String(), nil
}

func (uc *ReportUseCase) keyFindings(r *Report) []string {
	top := "Cryptographic Readiness"
	if len(r.Recommendations) > 0 {
		top = r.Recommendations[0].Title
	}
	return []string{
		fmt.Sprintf("Overall score: %d/%d (%s)", r.Summary.Score, r.Summary.MaxScore, r.Summary.Level),
		fmt.Sprintf("Organization size: %s (%s)", r.OrgSize.Label, r.OrgSize.PatientRange),
		"Top vulnerability: " + top,
		"Recommended action: " + r.Summary.Urgency,
		"Potential exposure: " + r.Costs.Total.Formatted,
	}
}
