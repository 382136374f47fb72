package models

import (
	"fmt"
	"time"
)

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func ParseSaleStatus(s string) (SaleStatus, error) {
	switch s {
	case "completed":
		return SaleStatusCompleted, nil
	case "pending":
		return SaleStatusPending, nil
	case "cancelled":
		return SaleStatusCancelled, nil
	default:
		return "", fmt.Errorf("invalid sale status: %s", s)
	}
}

type Sale struct {
	ID            string
	CustomerName  string
	CarID         string
	Price         int64
	PaymentMethod string
	Notes         string
	Status        SaleStatus
	CreatedByID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Car *Car
}

// SalesSummary holds the dashboard counters. Revenue sums completed sales
// only; pending and cancelled contribute zero.
type SalesSummary struct {
	TotalSales     int
	CompletedSales int
	PendingSales   int
	TotalRevenue   int64
}
