package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestAvailableForDate(t *testing.T) {
	now := time.Date(2025, 1, 9, 15, 30, 0, 0, time.Local)
	tomorrow := time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)
	yesterday := time.Date(2025, 1, 8, 0, 0, 0, 0, time.Local)
	today := time.Date(2025, 1, 9, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name        string
		limit       int
		booked      int64
		serviceDate time.Time
		want        bool
	}{
		{
			name:        "below the daily limit",
			limit:       3,
			booked:      2,
			serviceDate: tomorrow,
			want:        true,
		},
		{
			name:        "at the daily limit",
			limit:       3,
			booked:      3,
			serviceDate: tomorrow,
			want:        false,
		},
		{
			name:        "limit of one exhausted by a single booking",
			limit:       1,
			booked:      1,
			serviceDate: tomorrow,
			want:        false,
		},
		{
			name:        "zero limit means unlimited",
			limit:       0,
			booked:      5000,
			serviceDate: tomorrow,
			want:        true,
		},
		{
			name:        "past dates rejected regardless of capacity",
			limit:       0,
			booked:      0,
			serviceDate: yesterday,
			want:        false,
		},
		{
			name:        "today is still bookable",
			limit:       3,
			booked:      0,
			serviceDate: today,
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availableForDate(tt.limit, tt.booked, tt.serviceDate, now))
		})
	}
}

func TestParseServiceDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		got, err := parseServiceDate("2025-01-10")
		require.NoError(t, err)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.January, got.Month())
		assert.Equal(t, 10, got.Day())
	})

	t.Run("RFC3339 timestamp normalized to local midnight", func(t *testing.T) {
		got, err := parseServiceDate("2025-01-10T06:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, 10, got.Day())
		assert.Equal(t, time.Local, got.Location())
		assert.Equal(t, 0, got.Hour())
	})

	// Both input formats must land in the same capacity window, otherwise
	// same-day bookings submitted via different clients evade the daily limit.
	t.Run("UTC timestamp buckets with the plain date", func(t *testing.T) {
		plain, err := parseServiceDate("2025-01-10")
		require.NoError(t, err)
		rfc, err := parseServiceDate("2025-01-10T00:00:00Z")
		require.NoError(t, err)
		assert.True(t, rfc.Equal(plain))
		assert.Equal(t, utils.BeginningOfDay(plain), utils.BeginningOfDay(rfc))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseServiceDate("tenth of january")
		assert.Error(t, err)
	})
}

func mockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	original := config.DB
	config.DB = gdb
	return mock, func() {
		config.DB = original
		sqlDB.Close()
	}
}

func decideRequest(t *testing.T, callerID uuid.UUID, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/decide", func(c *gin.Context) {
		c.Set("userId", callerID.String())
		c.Set("roles", []string{models.RoleApprover})
	}, DecideBooking)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/decide", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDecideBookingAlreadyDecided(t *testing.T) {
	mock, cleanup := mockDB(t)
	defer cleanup()

	approverID := uuid.New()
	bookingID := uuid.New()

	// The compare-and-swap matches no row because the booking is no longer
	// PENDING; the follow-up read finds it APPROVED.
	mock.ExpectExec(`UPDATE "services" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(bookingID.String(), models.StatusApproved))

	w := decideRequest(t, approverID, gin.H{
		"serviceId": bookingID,
		"status":    models.StatusRejected,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), models.StatusApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBookingValidation(t *testing.T) {
	approverID := uuid.New()

	t.Run("status must be a terminal decision", func(t *testing.T) {
		w := decideRequest(t, approverID, gin.H{
			"serviceId": uuid.New(),
			"status":    "MAYBE",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("approver in body must match the caller", func(t *testing.T) {
		w := decideRequest(t, approverID, gin.H{
			"serviceId":  uuid.New(),
			"status":     models.StatusApproved,
			"approverId": uuid.New(),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
