package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/garasiku/garasiku-server/internal/files"
	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

const (
	minCarYear   = 1900
	filterAll    = "all"
	carsCollName = "cars"
)

type CarService struct {
	store    *store.Store
	resolver *ReferenceResolver
	images   *files.Store
	hub      *Hub
	log      *zap.SugaredLogger
}

func NewCarService(st *store.Store, resolver *ReferenceResolver, images *files.Store, hub *Hub) *CarService {
	return &CarService{
		store:    st,
		resolver: resolver,
		images:   images,
		hub:      hub,
		log:      zap.S().Named("car_service"),
	}
}

// CarListParams is the filter surface of the storefront and the dashboard
// list. A zero value or the "all" sentinel on any field means no constraint.
type CarListParams struct {
	Search        string
	Brand         string
	BodyType      string
	Transmission  string
	MinPrice      *int64
	MaxPrice      *int64
	AvailableOnly bool
	Sort          []store.SortParam
	Limit         uint64
	Offset        uint64
}

type CarListResult struct {
	Cars  []models.Car
	Total int
}

func (s *CarService) List(ctx context.Context, params CarListParams) (*CarListResult, error) {
	opts := s.buildListOptions(params, true)

	cars, err := s.store.Car().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Total count ignores pagination but keeps the filters.
	countParams := params
	countParams.Limit = 0
	countParams.Offset = 0
	countParams.Sort = nil
	total, err := s.store.Car().Count(ctx, s.buildListOptions(countParams, false)...)
	if err != nil {
		return nil, err
	}

	return &CarListResult{Cars: cars, Total: total}, nil
}

func (s *CarService) buildListOptions(params CarListParams, sorted bool) []store.ListOption {
	var opts []store.ListOption

	if params.Search != "" {
		opts = append(opts, store.BySearch(params.Search))
	}
	if set(params.Brand) {
		opts = append(opts, store.ByBrand(params.Brand))
	}
	if set(params.BodyType) {
		opts = append(opts, store.ByBodyType(params.BodyType))
	}
	if set(params.Transmission) {
		if t, err := models.ParseTransmission(params.Transmission); err == nil {
			opts = append(opts, store.ByTransmission(t))
		}
	}

	// A lone lower-bound control is an upper bound: the storefront's price
	// presets are "< Rp N" buckets. Both bounds make a closed interval.
	switch {
	case params.MinPrice != nil && params.MaxPrice != nil:
		opts = append(opts, store.BySellPriceRange(*params.MinPrice, *params.MaxPrice))
	case params.MinPrice != nil:
		opts = append(opts, store.ByMaxSellPrice(*params.MinPrice))
	case params.MaxPrice != nil:
		opts = append(opts, store.ByMaxSellPrice(*params.MaxPrice))
	}

	if params.AvailableOnly {
		opts = append(opts, store.ByAvailable())
	}

	if sorted {
		if len(params.Sort) > 0 {
			opts = append(opts, store.WithSort(params.Sort))
		} else {
			opts = append(opts, store.WithDefaultSort())
		}
		if params.Limit > 0 {
			opts = append(opts, store.WithLimit(params.Limit))
		}
		if params.Offset > 0 {
			opts = append(opts, store.WithOffset(params.Offset))
		}
	}

	return opts
}

func set(v string) bool {
	return v != "" && v != filterAll
}

func (s *CarService) Get(ctx context.Context, id string) (*models.Car, error) {
	return s.store.Car().Get(ctx, id)
}

// ImageUpload is one newly attached file.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CarInput carries the car form fields. Brand, body type and model may come
// as trusted ids or as names to find-or-create.
type CarInput struct {
	Brand        Ref
	BodyType     Ref
	Model        ModelSpec
	Condition    int
	Transmission models.Transmission
	Mileage      int64
	BuyPrice     int64
	SellPrice    int64
	Year         int
	Description  string
}

func (in CarInput) validate() error {
	if in.Condition < 0 || in.Condition > 100 {
		return srvErrors.NewOutOfRangeError("condition", "must be between 0 and 100")
	}
	if currentYear := time.Now().Year(); in.Year < minCarYear || in.Year > currentYear {
		return srvErrors.NewOutOfRangeError("year",
			fmt.Sprintf("must be between %d and %d", minCarYear, currentYear))
	}
	if in.BuyPrice < 0 {
		return srvErrors.NewOutOfRangeError("buy_price", "must not be negative")
	}
	if in.SellPrice < 0 {
		return srvErrors.NewOutOfRangeError("sell_price", "must not be negative")
	}
	if in.Transmission == "" {
		return srvErrors.NewMissingFieldError("transmission")
	}
	return nil
}

// Create resolves the references, stores the uploaded images and inserts the
// car. Reference resolution failure halts the submission before any car or
// image write.
func (s *CarService) Create(ctx context.Context, input CarInput, uploads []ImageUpload) (*models.Car, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, ResolveRequest{
		Brand:    input.Brand,
		BodyType: input.BodyType,
		Model:    input.Model,
	})
	if err != nil {
		return nil, err
	}

	car := &models.Car{
		ModelID:      resolved.ModelID,
		Condition:    input.Condition,
		Transmission: input.Transmission,
		Mileage:      input.Mileage,
		BuyPrice:     input.BuyPrice,
		SellPrice:    input.SellPrice,
		Year:         input.Year,
		Description:  input.Description,
	}

	created, err := s.store.Car().Create(ctx, car)
	if err != nil {
		return nil, err
	}

	images, err := s.saveUploads(created.ID, uploads)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		created.Images = images
		if created, err = s.store.Car().Update(ctx, created); err != nil {
			return nil, err
		}
	}

	s.hub.Publish(Event{Collection: carsCollName, Action: EventActionCreate, RecordID: created.ID})
	s.log.Infow("created car", "id", created.ID, "model", resolved.ModelID)

	return s.store.Car().Get(ctx, created.ID)
}

// Update applies the edit form. A submission that changes nothing (no field
// differs, no image added or removed) is rejected before any write. The
// final image list keeps the surviving existing images first, in order,
// followed by the new uploads.
func (s *CarService) Update(ctx context.Context, id string, input CarInput, uploads []ImageUpload, removeImages []string) (*models.Car, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	current, err := s.store.Car().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.dirty(current, input) && len(uploads) == 0 && len(removeImages) == 0 {
		return nil, srvErrors.NewNoChangesError()
	}

	resolved, err := s.resolver.Resolve(ctx, ResolveRequest{
		Brand:    input.Brand,
		BodyType: input.BodyType,
		Model:    input.Model,
	})
	if err != nil {
		return nil, err
	}

	removed := make(map[string]bool, len(removeImages))
	for _, f := range removeImages {
		removed[f] = true
	}
	var imageList []string
	for _, f := range current.Images {
		if removed[f] {
			if err := s.images.Remove(id, f); err != nil {
				s.log.Warnw("failed to remove image file", "car", id, "file", f, "error", err)
			}
			continue
		}
		imageList = append(imageList, f)
	}
	newImages, err := s.saveUploads(id, uploads)
	if err != nil {
		return nil, err
	}
	imageList = append(imageList, newImages...)

	updated := *current
	updated.ModelID = resolved.ModelID
	updated.Condition = input.Condition
	updated.Transmission = input.Transmission
	updated.Mileage = input.Mileage
	updated.BuyPrice = input.BuyPrice
	updated.SellPrice = input.SellPrice
	updated.Year = input.Year
	updated.Description = input.Description
	updated.Images = imageList

	if _, err := s.store.Car().Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.hub.Publish(Event{Collection: carsCollName, Action: EventActionUpdate, RecordID: id})

	return s.store.Car().Get(ctx, id)
}

// dirty reports whether any form field differs from the stored car. Brand
// and model references compare by id when the input carries an id, by name
// otherwise.
func (s *CarService) dirty(current *models.Car, input CarInput) bool {
	if current.Condition != input.Condition ||
		current.Transmission != input.Transmission ||
		current.Mileage != input.Mileage ||
		current.BuyPrice != input.BuyPrice ||
		current.SellPrice != input.SellPrice ||
		current.Year != input.Year ||
		current.Description != input.Description {
		return true
	}
	if refChanged(input.Brand, current.Model.BrandID, current.BrandName()) {
		return true
	}
	if refChanged(input.BodyType, current.Model.BodyTypeID, current.BodyTypeName()) {
		return true
	}
	if refChanged(input.Model.Ref, current.ModelID, current.Model.Name) {
		return true
	}
	return false
}

func refChanged(ref Ref, currentID, currentName string) bool {
	if ref.byID() {
		return ref.ID != currentID
	}
	return ref.Name != currentName
}

func (s *CarService) Delete(ctx context.Context, id string) error {
	if err := s.store.Car().Delete(ctx, id); err != nil {
		return err
	}
	if err := s.images.RemoveAll(id); err != nil {
		s.log.Warnw("failed to remove image folder", "car", id, "error", err)
	}
	s.hub.Publish(Event{Collection: carsCollName, Action: EventActionDelete, RecordID: id})
	return nil
}

func (s *CarService) saveUploads(carID string, uploads []ImageUpload) ([]string, error) {
	var stored []string
	for _, up := range uploads {
		name, err := s.images.Save(carID, up.Filename, up.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store image %s: %w", up.Filename, err)
		}
		stored = append(stored, name)
	}
	return stored, nil
}

// Brands lists the brand reference data for the filter dropdowns.
func (s *CarService) Brands(ctx context.Context) ([]models.Brand, error) {
	return s.store.Brand().List(ctx)
}

func (s *CarService) BodyTypes(ctx context.Context) ([]models.BodyType, error) {
	return s.store.BodyType().List(ctx)
}

// Models lists models, optionally restricted to one brand for the dependent
// dropdown in the car form.
func (s *CarService) Models(ctx context.Context, brandID string) ([]models.Model, error) {
	if !set(brandID) {
		brandID = ""
	}
	return s.store.Model().List(ctx, brandID)
}
