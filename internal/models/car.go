package models

import (
	"fmt"
	"time"
)

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

// ParseTransmission accepts the canonical values plus the AT/MT aliases used
// by the legacy dashboard forms.
func ParseTransmission(s string) (Transmission, error) {
	switch s {
	case "Automatic", "AT", "at":
		return TransmissionAutomatic, nil
	case "Manual", "MT", "mt":
		return TransmissionManual, nil
	default:
		return "", fmt.Errorf("invalid transmission: %s", s)
	}
}

// Car is the inventory record. Brand and body type are reached transitively
// through the model reference.
type Car struct {
	ID           string
	ModelID      string
	Condition    int
	Transmission Transmission
	Mileage      int64
	BuyPrice     int64
	SellPrice    int64
	Year         int
	Description  string
	Sold         bool
	Images       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Expanded references, populated by list/get queries.
	Model *Model
}

// BrandName returns the expanded brand name, or "" when not expanded.
func (c *Car) BrandName() string {
	if c.Model == nil || c.Model.Brand == nil {
		return ""
	}
	return c.Model.Brand.Name
}

func (c *Car) BodyTypeName() string {
	if c.Model == nil || c.Model.BodyType == nil {
		return ""
	}
	return c.Model.BodyType.Name
}
