// Package v1 defines the JSON types of the public API and their conversions
// from the domain models.
package v1

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type Brand struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type BodyType struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type Model struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	BrandId      string `json:"brandId"`
	BrandName    string `json:"brandName"`
	BodyTypeId   string `json:"bodyTypeId"`
	BodyTypeName string `json:"bodyTypeName"`
	Seats        int    `json:"seats"`
	Cc           int    `json:"cc"`
	Bags         int    `json:"bags"`
}

type Car struct {
	Id           string    `json:"id"`
	Model        Model     `json:"model"`
	Condition    int       `json:"condition"`
	Transmission string    `json:"transmission"`
	Mileage      int64     `json:"mileage"`
	BuyPrice     int64     `json:"buyPrice"`
	SellPrice    int64     `json:"sellPrice"`
	Year         int       `json:"year"`
	Description  string    `json:"description"`
	Sold         bool      `json:"sold"`
	Images       []string  `json:"images"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

type CarListResponse struct {
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	Total     int   `json:"total"`
	Cars      []Car `json:"cars"`
}

type Sale struct {
	Id            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CarId         string    `json:"carId"`
	CarName       string    `json:"carName"`
	Price         int64     `json:"price"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	Created       time.Time `json:"created"`
	Updated       time.Time `json:"updated"`
}

type SalesSummary struct {
	TotalSales     int   `json:"totalSales"`
	CompletedSales int   `json:"completedSales"`
	PendingSales   int   `json:"pendingSales"`
	TotalRevenue   int64 `json:"totalRevenue"`
}

type SaleRequest struct {
	CustomerName  string `json:"customerName"`
	CarId         string `json:"carId"`
	Price         int64  `json:"price"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
}

type User struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type GoogleCallbackRequest struct {
	Code        string `json:"code"`
	RedirectUri string `json:"redirectUri"`
}

type Error struct {
	Error string `json:"error"`
}
