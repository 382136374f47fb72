package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// Ref identifies reference data either by a trusted id (picked from a
// pre-populated dropdown) or by name (free text that may need to create a
// new entity). Exactly one of the two must be set.
type Ref struct {
	ID   string
	Name string
}

func (r Ref) byID() bool {
	return r.ID != ""
}

func (r Ref) empty() bool {
	return r.ID == "" && r.Name == ""
}

// ModelSpec carries the model reference plus the attributes needed if the
// model has to be created.
type ModelSpec struct {
	Ref
	Seats int
	CC    int
	Bags  int
}

type ResolveRequest struct {
	Brand    Ref
	BodyType Ref
	Model    ModelSpec
}

// ResolveResult reports the resolved ids and which entities this resolution
// created. The create steps are not transactional: on failure, entities
// created by earlier steps remain.
type ResolveResult struct {
	BrandID    string
	BodyTypeID string
	ModelID    string

	BrandCreated    bool
	BodyTypeCreated bool
	CreatedModel    *models.Model
}

// ReferenceResolver guarantees that the Brand, BodyType and Model referenced
// by a car submission exist, creating them on demand. Name lookups are exact
// and case-sensitive; resolving the same names twice reuses the existing
// records.
type ReferenceResolver struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewReferenceResolver(st *store.Store) *ReferenceResolver {
	return &ReferenceResolver{
		store: st,
		log:   zap.S().Named("reference_resolver"),
	}
}

// Resolve runs the resolution in order: brand, then body type, then model.
// Validation failures reject before any store call.
func (r *ReferenceResolver) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResult, error) {
	if req.Brand.empty() {
		return nil, srvErrors.NewMissingFieldError("brand")
	}
	if req.BodyType.empty() {
		return nil, srvErrors.NewMissingFieldError("body_type")
	}
	if req.Model.empty() {
		return nil, srvErrors.NewMissingFieldError("model")
	}

	result := &ResolveResult{}

	brandID, created, err := r.resolveBrand(ctx, req.Brand)
	if err != nil {
		return result, err
	}
	result.BrandID = brandID
	result.BrandCreated = created

	bodyTypeID, created, err := r.resolveBodyType(ctx, req.BodyType)
	if err != nil {
		return result, err
	}
	result.BodyTypeID = bodyTypeID
	result.BodyTypeCreated = created

	modelID, createdModel, err := r.resolveModel(ctx, req.Model, brandID, bodyTypeID)
	if err != nil {
		return result, err
	}
	result.ModelID = modelID
	result.CreatedModel = createdModel

	return result, nil
}

func (r *ReferenceResolver) resolveBrand(ctx context.Context, ref Ref) (string, bool, error) {
	if ref.byID() {
		return ref.ID, false, nil
	}
	brand, err := r.store.Brand().GetByName(ctx, ref.Name)
	if err == nil {
		return brand.ID, false, nil
	}
	if !srvErrors.IsResourceNotFoundError(err) {
		return "", false, err
	}
	created, err := r.store.Brand().Create(ctx, ref.Name)
	if err != nil {
		return "", false, srvErrors.NewEntityCreateError("brand", err)
	}
	r.log.Infow("created brand", "name", ref.Name, "id", created.ID)
	return created.ID, true, nil
}

func (r *ReferenceResolver) resolveBodyType(ctx context.Context, ref Ref) (string, bool, error) {
	if ref.byID() {
		return ref.ID, false, nil
	}
	bt, err := r.store.BodyType().GetByName(ctx, ref.Name)
	if err == nil {
		return bt.ID, false, nil
	}
	if !srvErrors.IsResourceNotFoundError(err) {
		return "", false, err
	}
	created, err := r.store.BodyType().Create(ctx, ref.Name)
	if err != nil {
		return "", false, srvErrors.NewEntityCreateError("body_type", err)
	}
	r.log.Infow("created body type", "name", ref.Name, "id", created.ID)
	return created.ID, true, nil
}

func (r *ReferenceResolver) resolveModel(ctx context.Context, spec ModelSpec, brandID, bodyTypeID string) (string, *models.Model, error) {
	if spec.byID() {
		return spec.ID, nil, nil
	}
	m, err := r.store.Model().GetByName(ctx, spec.Name)
	if err == nil {
		return m.ID, nil, nil
	}
	if !srvErrors.IsResourceNotFoundError(err) {
		return "", nil, err
	}
	created, err := r.store.Model().Create(ctx, &models.Model{
		Name:       spec.Name,
		BrandID:    brandID,
		BodyTypeID: bodyTypeID,
		Seats:      spec.Seats,
		CC:         spec.CC,
		Bags:       spec.Bags,
	})
	if err != nil {
		return "", nil, srvErrors.NewEntityCreateError("model", err)
	}
	r.log.Infow("created model", "name", spec.Name, "id", created.ID)
	return created.ID, created, nil
}
