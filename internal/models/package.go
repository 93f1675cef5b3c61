package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
)

// StringArray is a custom type for handling TEXT[] arrays in PostgreSQL
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.Array(a).Value()
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	slice := (*[]string)(a)
	return pq.Array(slice).Scan(src)
}

// Package represents a bookable travel package.
// Packages are immutable from the booking flow's perspective (read-only at runtime).
type Package struct {
	ID            string      `json:"id" db:"id"`
	Slug          string      `json:"slug" db:"slug"`
	Title         string      `json:"title" db:"title"`
	Description   string      `json:"description" db:"description"`
	Images        StringArray `json:"images" db:"images"`
	Price         float64     `json:"price" db:"price"`
	Duration      int         `json:"duration" db:"duration"`
	Highlights    StringArray `json:"highlights" db:"highlights"`
	DestinationID *string     `json:"destination_id,omitempty" db:"destination_id"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
