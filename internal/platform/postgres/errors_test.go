package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: pgUniqueViolationCode, ConstraintName: "reviews_word_id_key"}

	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgForeignKeyViolationCode}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	fkErr := &pgconn.PgError{Code: pgForeignKeyViolationCode, ConstraintName: "review_logs_review_id_fkey"}

	assert.True(t, isForeignKeyViolation(fkErr))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("append failed: %w", fkErr)))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolationCode}))
	assert.False(t, isForeignKeyViolation(errors.New("connection refused")))
}
