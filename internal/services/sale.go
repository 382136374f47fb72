package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

const salesCollName = "sales"

// SaleService handles sales records. Creating a sale marks the referenced
// car sold and cancelling un-marks it; the two writes are not atomic, and a
// failure of the second is surfaced rather than rolled back.
type SaleService struct {
	store *store.Store
	hub   *Hub
	log   *zap.SugaredLogger
}

func NewSaleService(st *store.Store, hub *Hub) *SaleService {
	return &SaleService{
		store: st,
		hub:   hub,
		log:   zap.S().Named("sale_service"),
	}
}

type SaleListParams struct {
	Search        string
	Status        string
	PaymentMethod string
	DateFrom      *time.Time
	DateTo        *time.Time
	SortField     string
	SortDesc      bool
}

func (s *SaleService) List(ctx context.Context, params SaleListParams) ([]models.Sale, error) {
	return s.store.Sale().List(ctx, s.buildListOptions(params)...)
}

func (s *SaleService) buildListOptions(params SaleListParams) []store.SaleListOption {
	var opts []store.SaleListOption

	if params.Search != "" {
		opts = append(opts, store.SaleBySearch(params.Search))
	}
	if set(params.Status) {
		if status, err := models.ParseSaleStatus(params.Status); err == nil {
			opts = append(opts, store.SaleByStatus(status))
		}
	}
	if set(params.PaymentMethod) {
		opts = append(opts, store.SaleByPaymentMethod(params.PaymentMethod))
	}
	if params.DateFrom != nil {
		opts = append(opts, store.SaleByDateFrom(*params.DateFrom))
	}
	if params.DateTo != nil {
		opts = append(opts, store.SaleByDateTo(*params.DateTo))
	}

	if params.SortField != "" {
		opts = append(opts, store.SaleWithSort(params.SortField, params.SortDesc))
	} else {
		opts = append(opts, store.SaleWithDefaultSort())
	}
	return opts
}

func (s *SaleService) Get(ctx context.Context, id string) (*models.Sale, error) {
	return s.store.Sale().Get(ctx, id)
}

type SaleInput struct {
	CustomerName  string
	CarID         string
	Price         int64
	PaymentMethod string
	Notes         string
	Status        models.SaleStatus
	CreatedByID   string
}

func (in SaleInput) validate() error {
	if in.CustomerName == "" {
		return srvErrors.NewMissingFieldError("customer_name")
	}
	if in.CarID == "" {
		return srvErrors.NewMissingFieldError("car")
	}
	if in.Price < 0 {
		return srvErrors.NewOutOfRangeError("price", "must not be negative")
	}
	return nil
}

// Create records a sale and marks the car sold.
func (s *SaleService) Create(ctx context.Context, input SaleInput) (*models.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Reject sales against unknown cars before writing.
	if _, err := s.store.Car().Get(ctx, input.CarID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.SaleStatusPending
	}

	sale, err := s.store.Sale().Create(ctx, &models.Sale{
		CustomerName:  input.CustomerName,
		CarID:         input.CarID,
		Price:         input.Price,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		Status:        status,
		CreatedByID:   input.CreatedByID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Car().SetSold(ctx, input.CarID, true); err != nil {
		s.log.Errorw("sale recorded but car not marked sold", "sale", sale.ID,
			"car", input.CarID, "error", err)
		return nil, fmt.Errorf("sale %s recorded but car not marked sold: %w", sale.ID, err)
	}

	s.hub.Publish(Event{Collection: salesCollName, Action: EventActionCreate, RecordID: sale.ID})
	s.hub.Publish(Event{Collection: carsCollName, Action: EventActionUpdate, RecordID: input.CarID})

	return s.store.Sale().Get(ctx, sale.ID)
}

func (s *SaleService) Update(ctx context.Context, id string, input SaleInput) (*models.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	current, err := s.store.Sale().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The car reference is fixed at creation; moving a sale to another car
	// would leave both cars' sold flags wrong.
	if input.CarID != current.CarID {
		return nil, srvErrors.NewImmutableFieldError("car")
	}

	updated := *current
	updated.CustomerName = input.CustomerName
	updated.Price = input.Price
	updated.PaymentMethod = input.PaymentMethod
	updated.Notes = input.Notes
	if input.Status != "" {
		updated.Status = input.Status
	}

	if _, err := s.store.Sale().Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.hub.Publish(Event{Collection: salesCollName, Action: EventActionUpdate, RecordID: id})
	return s.store.Sale().Get(ctx, id)
}

// Cancel sets the sale's status to cancelled and returns the car to the
// available pool.
func (s *SaleService) Cancel(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.store.Sale().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sale.Status = models.SaleStatusCancelled
	if _, err := s.store.Sale().Update(ctx, sale); err != nil {
		return nil, err
	}

	if err := s.store.Car().SetSold(ctx, sale.CarID, false); err != nil {
		s.log.Errorw("sale cancelled but car still marked sold", "sale", id,
			"car", sale.CarID, "error", err)
		return nil, fmt.Errorf("sale %s cancelled but car still marked sold: %w", id, err)
	}

	s.hub.Publish(Event{Collection: salesCollName, Action: EventActionUpdate, RecordID: id})
	s.hub.Publish(Event{Collection: carsCollName, Action: EventActionUpdate, RecordID: sale.CarID})

	return s.store.Sale().Get(ctx, id)
}

func (s *SaleService) Delete(ctx context.Context, id string) error {
	if err := s.store.Sale().Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(Event{Collection: salesCollName, Action: EventActionDelete, RecordID: id})
	return nil
}

func (s *SaleService) Summary(ctx context.Context) (*models.SalesSummary, error) {
	return s.store.Sale().Summary(ctx)
}

// AvailableCars lists unsold cars for the sale-creation selector.
func (s *SaleService) AvailableCars(ctx context.Context) ([]models.Car, error) {
	return s.store.Car().List(ctx, store.ByAvailable(), store.WithDefaultSort())
}

var exportHeader = []string{"ID", "Date", "Customer", "Car", "Price", "Payment Method", "Status"}

// Export renders the filtered sales as an xlsx workbook.
func (s *SaleService) Export(ctx context.Context, params SaleListParams) (*excelize.File, error) {
	sales, err := s.List(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Sales"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, sale := range sales {
		carName := ""
		if sale.Car != nil && sale.Car.Model != nil {
			carName = fmt.Sprintf("%s %s", sale.Car.Model.Brand.Name, sale.Car.Model.Name)
		}
		values := []any{
			sale.ID,
			sale.CreatedAt.Format("2006-01-02"),
			sale.CustomerName,
			carName,
			sale.Price,
			sale.PaymentMethod,
			string(sale.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
