package v1

import (
	"strings"

	"github.com/garasiku/garasiku-server/internal/files"
	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/store"
)

// NewCarFromModel converts a domain car to its API shape. Image filenames
// are resolved to servable URLs.
func NewCarFromModel(car models.Car) Car {
	apiCar := Car{
		Id:           car.ID,
		Condition:    car.Condition,
		Transmission: string(car.Transmission),
		Mileage:      car.Mileage,
		BuyPrice:     car.BuyPrice,
		SellPrice:    car.SellPrice,
		Year:         car.Year,
		Description:  car.Description,
		Sold:         car.Sold,
		Images:       make([]string, 0, len(car.Images)),
		Created:      car.CreatedAt,
		Updated:      car.UpdatedAt,
	}
	for _, filename := range car.Images {
		apiCar.Images = append(apiCar.Images, files.URL(car.ID, filename))
	}
	if car.Model != nil {
		apiCar.Model = NewModelFromDomain(*car.Model)
		apiCar.Model.Id = car.ModelID
	}
	return apiCar
}

func NewModelFromDomain(m models.Model) Model {
	apiModel := Model{
		Id:         m.ID,
		Name:       m.Name,
		BrandId:    m.BrandID,
		BodyTypeId: m.BodyTypeID,
		Seats:      m.Seats,
		Cc:         m.CC,
		Bags:       m.Bags,
	}
	if m.Brand != nil {
		apiModel.BrandName = m.Brand.Name
	}
	if m.BodyType != nil {
		apiModel.BodyTypeName = m.BodyType.Name
	}
	return apiModel
}

func NewSaleFromModel(sale models.Sale) Sale {
	apiSale := Sale{
		Id:            sale.ID,
		CustomerName:  sale.CustomerName,
		CarId:         sale.CarID,
		Price:         sale.Price,
		PaymentMethod: sale.PaymentMethod,
		Notes:         sale.Notes,
		Status:        string(sale.Status),
		Created:       sale.CreatedAt,
		Updated:       sale.UpdatedAt,
	}
	if sale.Car != nil && sale.Car.Model != nil {
		name := sale.Car.Model.Name
		if sale.Car.Model.Brand != nil && sale.Car.Model.Brand.Name != "" {
			name = sale.Car.Model.Brand.Name + " " + name
		}
		apiSale.CarName = name
	}
	return apiSale
}

func NewUserFromModel(u models.User) User {
	return User{Id: u.ID, Email: u.Email, Name: u.Name}
}

// ParseSortParams parses a comma-separated sort expression in the
// "-created,year" stored-record style: a leading dash means descending.
func ParseSortParams(expr string) []store.SortParam {
	if expr == "" {
		return nil
	}
	var sorts []store.SortParam
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		sorts = append(sorts, store.SortParam{Field: field, Desc: desc})
	}
	return sorts
}
