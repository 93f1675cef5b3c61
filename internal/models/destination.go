package models

import "time"

// Destination represents a travel destination grouping one or more packages.
// Destinations are loaded by the seed/admin tooling and read-only at runtime.
type Destination struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Packages is populated on detail reads only
	Packages []Package `json:"packages,omitempty" db:"-"`
}
