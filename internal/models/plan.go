package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a sellable subscription plan for recurring weekly classes.
type Plan struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Price          decimal.Decimal `db:"price" json:"price"`
	AllowProration bool            `db:"allow_proration" json:"allow_proration"`
	Active         bool            `db:"active" json:"active"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// PlanFilter describes query params for listing plans.
type PlanFilter struct {
	Active   *bool
	Page     int
	PageSize int
}
