package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/secmon-lab/qrisk/pkg/domain/types"
)

type DigestAnswer struct {
	QuestionID types.QuestionID `json:"question_id"`
	Question   string           `json:"question"`
	Answer     string           `json:"answer"`
	Answered   bool             `json:"answered"`
}

type DigestCategory struct {
	ID      types.CategoryID `json:"id"`
	Name    string           `json:"name"`
	Answers []DigestAnswer   `json:"answers"`
}

// Digest is a descriptive, per-category view of the raw answers of an assessment
type Digest struct {
	AssessmentID model.AssessmentID `json:"assessment_id"`
	Organization string             `json:"organization"`
	CatalogName  string             `json:"catalog_name"`
	Categories   []DigestCategory   `json:"categories"`
}

// Digest reads the stored answers through the loaded catalog. Scores are never derived here,
// so assessments from an older catalog version can still be described.
func (uc *ReportUseCase) Digest(ctx context.Context, id model.AssessmentID) (*Digest, error) {
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

	digest := &Digest{
		AssessmentID: a.ID,
		Organization: a.Organization,
		CatalogName:  a.CatalogName,
	}

	for _, cat := range c.Categories {
		questions := c.InCategory(cat.ID)
		if len(questions) == 0 {
			continue
		}
		dc := DigestCategory{ID: cat.ID, Name: cat.Name}
		for _, q := range questions {
			answer, answered := describeAnswer(q, a.Responses)
			dc.Answers = append(dc.Answers, DigestAnswer{
				QuestionID: q.ID,
				Question:   q.Text,
				Answer:     answer,
				Answered:   answered,
			})
		}
		digest.Categories = append(digest.Categories, dc)
	}
	return digest, nil
}

// describeAnswer renders the answer with option labels. Unknown option ids are shown as given.
func describeAnswer(q *config.Question, rs model.ResponseSet) (string, bool) {
	v, ok := model.LookupResponse(rs, string(q.ID))
	if !ok {
		return model.NotSpecified, false
	}

	if ids, ok := model.AsMulti(v); ok {
		labels := make([]string, 0, len(ids))
		for _, id := range ids {
			labels = append(labels, q.OptionLabel(id))
		}
		return model.FormatAnswer(labels), true
	}
	if id, ok := model.AsSingle(v); ok {
		return q.OptionLabel(id), true
	}
	return model.FormatAnswer(v), true
}
