package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/nbmtravel/booking-backend/internal/services"
)

func setupWebhookHandler(db *sqlx.DB, provider services.CheckoutProvider) *WebhookHandler {
	logger := testLogger()
	webhookService := services.NewWebhookService(
		database.NewBookingRepository(db),
		database.NewPaymentEventRepository(db, logger),
		provider,
		testNotificationService(),
		logger,
	)
	return NewWebhookHandler(webhookService, logger)
}

func postWebhook(c *gin.Context, payload, signature string) {
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", bytes.NewBufferString(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	if signature != "" {
		c.Request.Header.Set("Stripe-Signature", signature)
	}
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	handler := setupWebhookHandler(db, &stubProvider{
		configured: true,
		eventErr:   models.ErrBadSignature,
	})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	postWebhook(c, `{}`, "t=1,v1=forged")

	handler.Handle(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "webhook signature verification failed", response["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleWebhook_ProviderNotConfigured(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	handler := setupWebhookHandler(db, &stubProvider{configured: false})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	postWebhook(c, `{}`, "t=1,v1=sig")

	handler.Handle(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleWebhook_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	event := &services.Event{ID: "evt_1", Type: "payment_intent.payment_failed"}
	event.Data.Object = []byte(`{"id":"pi_unknown"}`)

	handler := setupWebhookHandler(db, &stubProvider{configured: true, event: event})

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payment_events`).
		WithArgs("evt_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`WHERE stripe_payment_intent_id`).
		WithArgs("pi_unknown").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO payment_events`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	postWebhook(c, `{"id":"evt_1"}`, "t=1,v1=sig")

	handler.Handle(c)

	// Unknown bookings are acknowledged so the provider does not retry forever
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["received"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
