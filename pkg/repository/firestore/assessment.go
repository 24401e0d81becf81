package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/interfaces"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CollectionAssessments is the collection name without prefix
const CollectionAssessments = "assessments"

type assessmentDocument struct {
	ID             string                  `firestore:"id"`
	Organization   string                  `firestore:"organization"`
	CatalogName    string                  `firestore:"catalog_name"`
	CatalogVersion string                  `firestore:"catalog_version"`
	Responses      map[string]any          `firestore:"responses"`
	Result         *model.AssessmentResult `firestore:"result"`
	History        []model.RescoreRecord   `firestore:"history"`
	CreatedAt      time.Time               `firestore:"created_at"`
	UpdatedAt      time.Time               `firestore:"updated_at"`
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	return &assessmentDocument{
		ID:             a.ID.String(),
		Organization:   a.Organization,
		CatalogName:    a.CatalogName,
		CatalogVersion: a.CatalogVersion,
		Responses:      a.Responses.Clone(),
		Result:         a.Result,
		History:        a.History,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (d *assessmentDocument) toModel() *model.Assessment {
	return &model.Assessment{
		ID:             model.AssessmentID(d.ID),
		Organization:   d.Organization,
		CatalogName:    d.CatalogName,
		CatalogVersion: d.CatalogVersion,
		Responses:      model.ResponseSet(d.Responses),
		Result:         d.Result,
		History:        d.History,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	return CollectionName(r.collectionPrefix, CollectionAssessments)
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if a.ID == "" {
		return nil, goerr.New("assessment ID is empty")
	}

	doc := toAssessmentDocument(a)
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "assessment already exists", goerr.V("id", a.ID))
		}
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V("id", a.ID))
	}

	return doc.toModel().Clone(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) List(ctx context.Context, opts ...interfaces.ListAssessmentOption) ([]*model.Assessment, error) {
	cfg := interfaces.BuildListAssessmentConfig(opts...)

	query := r.client.Collection(r.assessmentsCollection()).Query
	if name := cfg.CatalogName(); name != nil {
		query = query.Where("catalog_name", "==", *name)
	}
	// catalog_name + created_at is a composite index provisioned by the migrate command
	query = query.OrderBy("created_at", firestore.Asc)
	if limit := cfg.Limit(); limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("docID", doc.Ref.ID))
		}
		assessments = append(assessments, assessmentDoc.toModel())
	}
	return assessments, nil
}

func (r *assessmentRepository) Update(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(a.ID.String())
	doc := toAssessmentDocument(a)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", a.ID))
			}
			return goerr.Wrap(err, "failed to get assessment", goerr.V("id", a.ID))
		}

		var existing assessmentDocument
		if err := snap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", a.ID))
		}

		doc.CreatedAt = existing.CreatedAt
		doc.UpdatedAt = time.Now().UTC()
		return tx.Set(docRef, doc)
	})
	if err != nil {
		return nil, err
	}

	return doc.toModel().Clone(), nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id model.AssessmentID) error {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}
	return nil
}
