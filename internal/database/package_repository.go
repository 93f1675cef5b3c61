package database

import (
	"database/sql"
	"errors"

	"github.com/nbmtravel/booking-backend/internal/models"
)

// PackageRepository handles database operations for the packages table.
// Packages are read-only from the booking flow's perspective.
type PackageRepository struct {
	db DB
}

// NewPackageRepository creates a new PackageRepository
func NewPackageRepository(db DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `
	id, slug, title, description, images, price, duration, highlights,
	destination_id, created_at, updated_at
`

// GetByID retrieves a package by ID
func (r *PackageRepository) GetByID(packageID string) (*models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	return r.scanPackage(r.db.QueryRow(query, packageID))
}

// GetBySlug retrieves a package by its unique slug
func (r *PackageRepository) GetBySlug(slug string) (*models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE slug = $1`
	return r.scanPackage(r.db.QueryRow(query, slug))
}

// List retrieves all packages ordered by price
func (r *PackageRepository) List() ([]models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY price`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPackages(rows)
}

// ListByDestination retrieves all packages for a destination
func (r *PackageRepository) ListByDestination(destinationID string) ([]models.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE destination_id = $1 ORDER BY price`

	rows, err := r.db.Query(query, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPackages(rows)
}

func (r *PackageRepository) scanPackage(row *sql.Row) (*models.Package, error) {
	pkg := &models.Package{}
	var destinationID sql.NullString

	err := row.Scan(
		&pkg.ID, &pkg.Slug, &pkg.Title, &pkg.Description, &pkg.Images,
		&pkg.Price, &pkg.Duration, &pkg.Highlights,
		&destinationID, &pkg.CreatedAt, &pkg.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("package")
	}
	if err != nil {
		return nil, err
	}

	if destinationID.Valid {
		pkg.DestinationID = &destinationID.String
	}

	return pkg, nil
}

func (r *PackageRepository) scanPackages(rows *sql.Rows) ([]models.Package, error) {
	var packages []models.Package
	for rows.Next() {
		pkg := models.Package{}
		var destinationID sql.NullString

		err := rows.Scan(
			&pkg.ID, &pkg.Slug, &pkg.Title, &pkg.Description, &pkg.Images,
			&pkg.Price, &pkg.Duration, &pkg.Highlights,
			&destinationID, &pkg.CreatedAt, &pkg.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if destinationID.Valid {
			pkg.DestinationID = &destinationID.String
		}

		packages = append(packages, pkg)
	}

	return packages, rows.Err()
}
