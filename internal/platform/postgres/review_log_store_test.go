package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// The average must count exactly one entry per review even when two entries
// for the same review share a created_at timestamp, which DISTINCT ON with
// the id tiebreaker guarantees.
func TestReviewLogStore_LatestQualityAverage_OneEntryPerReview(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT ON (review_id) quality")).
		WithArgs(ids[0], ids[1]).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4.5))

	s := NewReviewLogStore(db, nil)
	avg, err := s.LatestQualityAverage(context.Background(), ids)
	require.NoError(t, err)

	assert.InDelta(t, 4.5, avg, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewLogStore_LatestQualityAverage_Empty(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReviewLogStore(db, nil)
	avg, err := s.LatestQualityAverage(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, avg, "no reviews means no query and a zero average")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewLogStore_Append_Duplicate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry, err := domain.NewReviewLog(uuid.New(), 4, nil)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO review_logs")).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolationCode})

	s := NewReviewLogStore(db, nil)
	err = s.Append(context.Background(), entry)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
