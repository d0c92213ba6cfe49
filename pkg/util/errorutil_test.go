package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	orig := NewForbidden("nope")
	got := ToDomainError(orig)
	assert.Equal(t, "FORBIDDEN", got.Code)
	assert.Equal(t, http.StatusForbidden, got.HTTPStatus)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	got := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
}

func TestToDomainErrorMapsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	got := ToDomainError(pgErr)
	assert.Equal(t, "CONFLICT", got.Code)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)

	// Other SQLSTATEs stay internal.
	other := ToDomainError(&pgconn.PgError{Code: "23503"})
	assert.Equal(t, "INTERNAL_ERROR", other.Code)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("boom")
	got := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
	require.ErrorIs(t, got, cause)
}
