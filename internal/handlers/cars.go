package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/garasiku/garasiku-server/api/v1"
	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/services"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// GetCars returns the car list with filtering and pagination
// (GET /cars)
func (h *Handler) GetCars(c *gin.Context) {
	log := zap.S().Named("car_handler")

	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	pageSize := defaultPageSize
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 {
		pageSize = v
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}

	params := services.CarListParams{
		Search:        c.Query("search"),
		Brand:         c.Query("brand"),
		BodyType:      c.Query("bodyType"),
		Transmission:  c.Query("transmission"),
		AvailableOnly: c.Query("available") == "true",
		Sort:          v1.ParseSortParams(c.Query("sort")),
		Limit:         uint64(pageSize),
		Offset:        uint64((page - 1) * pageSize),
	}
	if v, err := strconv.ParseInt(c.Query("minPrice"), 10, 64); err == nil {
		params.MinPrice = &v
	}
	if v, err := strconv.ParseInt(c.Query("maxPrice"), 10, 64); err == nil {
		params.MaxPrice = &v
	}

	result, err := h.carSrv.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, log, "list cars", err)
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	apiCars := make([]v1.Car, 0, len(result.Cars))
	for _, car := range result.Cars {
		apiCars = append(apiCars, v1.NewCarFromModel(car))
	}

	c.JSON(http.StatusOK, v1.CarListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Cars:      apiCars,
	})
}

// GetCar returns one car with its model, brand and body type expanded
// (GET /cars/{id})
func (h *Handler) GetCar(c *gin.Context) {
	car, err := h.carSrv.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, zap.S().Named("car_handler"), "get car", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewCarFromModel(*car))
}

// CreateCar creates a car from a multipart form, resolving brand, body type
// and model by id or by name
// (POST /cars)
func (h *Handler) CreateCar(c *gin.Context) {
	log := zap.S().Named("car_handler")

	input, uploads, _, err := parseCarForm(c)
	if err != nil {
		respondError(c, log, "create car", err)
		return
	}

	car, err := h.carSrv.Create(c.Request.Context(), input, uploads)
	if err != nil {
		respondError(c, log, "create car", err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewCarFromModel(*car))
}

// UpdateCar applies the edit form; unchanged submissions are rejected
// (PATCH /cars/{id})
func (h *Handler) UpdateCar(c *gin.Context) {
	log := zap.S().Named("car_handler")

	input, uploads, removals, err := parseCarForm(c)
	if err != nil {
		respondError(c, log, "update car", err)
		return
	}

	car, err := h.carSrv.Update(c.Request.Context(), c.Param("id"), input, uploads, removals)
	if err != nil {
		respondError(c, log, "update car", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewCarFromModel(*car))
}

// DeleteCar removes a car and its stored images
// (DELETE /cars/{id})
func (h *Handler) DeleteCar(c *gin.Context) {
	if err := h.carSrv.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, zap.S().Named("car_handler"), "delete car", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ServeCarImage serves a stored image file
// (GET /files/cars/{id}/{filename})
func (h *Handler) ServeCarImage(c *gin.Context) {
	c.File(h.images.Path(c.Param("id"), c.Param("filename")))
}

// parseCarForm reads the multipart car form. The brand, body type and model
// references accept either *_id fields (trusted) or name fields
// (find-or-create).
func parseCarForm(c *gin.Context) (services.CarInput, []services.ImageUpload, []string, error) {
	var input services.CarInput

	form, err := c.MultipartForm()
	if err != nil {
		return input, nil, nil, srvErrors.NewOutOfRangeError("form", "expected multipart form data")
	}

	input.Brand = services.Ref{ID: c.PostForm("brand_id"), Name: c.PostForm("brand")}
	input.BodyType = services.Ref{ID: c.PostForm("body_type_id"), Name: c.PostForm("body_type")}
	input.Model = services.ModelSpec{
		Ref:   services.Ref{ID: c.PostForm("model_id"), Name: c.PostForm("model")},
		Seats: formInt(c, "seats"),
		CC:    formInt(c, "cc"),
		Bags:  formInt(c, "bags"),
	}

	transmission, err := models.ParseTransmission(c.PostForm("transmission"))
	if err != nil {
		return input, nil, nil, srvErrors.NewOutOfRangeError("transmission", err.Error())
	}
	input.Transmission = transmission
	input.Condition = formInt(c, "condition")
	input.Mileage = formInt64(c, "mileage")
	input.BuyPrice = formInt64(c, "buy_price")
	input.SellPrice = formInt64(c, "sell_price")
	input.Year = formInt(c, "year")
	input.Description = c.PostForm("description")

	uploads, err := openUploads(form.File["images"])
	if err != nil {
		return input, nil, nil, err
	}
	removals := form.Value["remove_images"]

	return input, uploads, removals, nil
}

func openUploads(headers []*multipart.FileHeader) ([]services.ImageUpload, error) {
	var uploads []services.ImageUpload
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, services.ImageUpload{Filename: fh.Filename, Content: f})
	}
	return uploads, nil
}

func formInt(c *gin.Context, field string) int {
	v, _ := strconv.Atoi(c.PostForm(field))
	return v
}

func formInt64(c *gin.Context, field string) int64 {
	v, _ := strconv.ParseInt(c.PostForm(field), 10, 64)
	return v
}
