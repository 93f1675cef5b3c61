package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbmtravel/booking-backend/internal/models"
)

func TestCreateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		phone := "+15550100"

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), "pkg-1", "Jane Doe", "jane@example.com", &phone, (*string)(nil)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at", "title"}).
				AddRow(now, now, "Paris Romantic Getaway"))

		booking := &models.Booking{
			PackageID: "pkg-1",
			Name:      "Jane Doe",
			Email:     "jane@example.com",
			Phone:     &phone,
		}

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, "Paris Romantic Getaway", booking.PackageTitle)
		assert.Nil(t, booking.PaymentStatus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Keeps Provided ID", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs("booking-7", "pkg-1", "Jane Doe", "jane@example.com", (*string)(nil), (*string)(nil)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at", "title"}).
				AddRow(now, now, "Paris Romantic Getaway"))

		booking := &models.Booking{
			ID:        "booking-7",
			PackageID: "pkg-1",
			Name:      "Jane Doe",
			Email:     "jane@example.com",
		}

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.Equal(t, "booking-7", booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		booking := &models.Booking{
			PackageID: "pkg-1",
			Name:      "Jane Doe",
			Email:     "jane@example.com",
		}

		err := repo.Create(booking)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	columns := []string{
		"id", "package_id", "name", "email", "phone", "message",
		"stripe_session_id", "stripe_payment_intent_id", "amount", "payment_status",
		"created_at", "updated_at",
	}

	t.Run("Success With Payment Fields", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs("booking-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"booking-1", "pkg-1", "Jane Doe", "jane@example.com", nil, nil,
				"cs_test_123", "pi_test_456", 1899.99, "paid",
				now, now,
			))

		booking, err := repo.GetByID("booking-1")
		require.NoError(t, err)
		require.NotNil(t, booking.StripeSessionID)
		assert.Equal(t, "cs_test_123", *booking.StripeSessionID)
		require.NotNil(t, booking.StripePaymentIntentID)
		assert.Equal(t, "pi_test_456", *booking.StripePaymentIntentID)
		require.NotNil(t, booking.Amount)
		assert.Equal(t, 1899.99, *booking.Amount)
		require.NotNil(t, booking.PaymentStatus)
		assert.Equal(t, models.PaymentStatusPaid, *booking.PaymentStatus)
		assert.Nil(t, booking.Phone)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success Before Checkout", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs("booking-2").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"booking-2", "pkg-1", "Jane Doe", "jane@example.com", nil, nil,
				nil, nil, nil, nil,
				now, now,
			))

		booking, err := repo.GetByID("booking-2")
		require.NoError(t, err)
		assert.Nil(t, booking.StripeSessionID)
		assert.Nil(t, booking.Amount)
		assert.Nil(t, booking.PaymentStatus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID("missing")
		assert.Nil(t, booking)
		assert.True(t, models.IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingByPaymentIntentID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`WHERE stripe_payment_intent_id`).
			WithArgs("pi_test_456").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "package_id", "name", "email", "phone", "message",
				"stripe_session_id", "stripe_payment_intent_id", "amount", "payment_status",
				"created_at", "updated_at",
			}).AddRow(
				"booking-1", "pkg-1", "Jane Doe", "jane@example.com", nil, nil,
				"cs_test_123", "pi_test_456", 1899.99, "paid",
				now, now,
			))

		booking, err := repo.GetByPaymentIntentID("pi_test_456")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Intent", func(t *testing.T) {
		mock.ExpectQuery(`WHERE stripe_payment_intent_id`).
			WithArgs("pi_unknown").
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByPaymentIntentID("pi_unknown")
		assert.Nil(t, booking)
		assert.True(t, models.IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateCheckoutSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("booking-1", "cs_test_123", 1899.99).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateCheckoutSession("booking-1", "cs_test_123", 1899.99)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("missing", "cs_test_123", 1899.99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateCheckoutSession("missing", "cs_test_123", 1899.99)
		assert.True(t, models.IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetPaymentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Paid With Intent", func(t *testing.T) {
		intent := "pi_test_456"

		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("booking-1", models.PaymentStatusPaid, &intent).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetPaymentStatus("booking-1", models.PaymentStatusPaid, &intent)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Refunded Without Intent", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("booking-1", models.PaymentStatusRefunded, (*string)(nil)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetPaymentStatus("booking-1", models.PaymentStatusRefunded, nil)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("missing", models.PaymentStatusFailed, (*string)(nil)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetPaymentStatus("missing", models.PaymentStatusFailed, nil)
		assert.True(t, models.IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Mock database implementation for testing
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
