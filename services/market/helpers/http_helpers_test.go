package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"bookstall/internal/marketerrors"
	model "bookstall/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{marketerrors.ErrValidation, http.StatusBadRequest},
		{marketerrors.ErrInvalidState, http.StatusBadRequest},
		{marketerrors.ErrInsufficientStock, http.StatusBadRequest},
		{marketerrors.ErrUnauthorized, http.StatusUnauthorized},
		{marketerrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{marketerrors.ErrForbidden, http.StatusForbidden},
		{marketerrors.ErrBookNotFound, http.StatusNotFound},
		{marketerrors.ErrUserNotFound, http.StatusNotFound},
		{marketerrors.ErrEmailTaken, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("service: failed to do something: %w", tc.err)
			status, message := MapErrorToHTTP(wrapped)
			require.Equal(t, tc.wantStatus, status)
			require.NotEmpty(t, message)
		})
	}
}

func TestNewBookResponse_FormatsTimestampsInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	created := time.Date(2024, 3, 1, 15, 4, 5, 0, loc)

	resp := NewBookResponse(model.Book{
		BookID:    "b1",
		Status:    model.StatusAvailable,
		CreatedAt: created,
	})

	require.Equal(t, "2024-03-01T12:04:05Z", resp.CreatedAt)
	require.Equal(t, "available", resp.Status)
}

func TestResponseSlices_NeverNil(t *testing.T) {
	require.NotNil(t, NewBookResponses(nil))
	require.NotNil(t, NewListingResponses(nil))
	require.NotNil(t, NewPurchaseRecordResponses(nil))
}
