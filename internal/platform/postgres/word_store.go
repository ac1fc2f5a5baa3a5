package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// WordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type WordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWordStore creates a new PostgreSQL implementation of the WordStore
// interface. If logger is nil, a default logger will be used.
func NewWordStore(db store.DBTX, log *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &WordStore{
		db:     db,
		logger: log.With(slog.String("component", "word_store")),
	}
}

// Ensure WordStore implements store.WordStore interface
var _ store.WordStore = (*WordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *WordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &WordStore{
		db:     tx,
		logger: s.logger,
	}
}

const wordColumns = `id, user_id, text, translation, phonetic, example_sentence, language, learned, created_at`

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *WordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordColumns + `
		FROM user_words
		WHERE id = $1
	`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, err
	}

	return word, nil
}

// ListUnlearned implements store.WordStore.ListUnlearned
func (s *WordStore) ListUnlearned(
	ctx context.Context,
	userID uuid.UUID,
	language *domain.Language,
	limit int,
) ([]*domain.Word, error) {
	return s.list(ctx, userID, language, false, limit)
}

// ListLearned implements store.WordStore.ListLearned
func (s *WordStore) ListLearned(
	ctx context.Context,
	userID uuid.UUID,
	language *domain.Language,
	limit int,
) ([]*domain.Word, error) {
	return s.list(ctx, userID, language, true, limit)
}

// list returns the user's words with the given learned flag in creation
// order. Creation order keeps repeated batch loads stable.
func (s *WordStore) list(
	ctx context.Context,
	userID uuid.UUID,
	language *domain.Language,
	learned bool,
	limit int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordColumns + `
		FROM user_words
		WHERE user_id = $1
		  AND learned = $2
	`
	args := []any{userID, learned}

	if language != nil {
		query += ` AND language = $3`
		args = append(args, *language)
	}

	query += `
		ORDER BY created_at ASC, id ASC
		LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Bool("learned", learned))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

// MarkLearned implements store.WordStore.MarkLearned
// Returns store.ErrWordNotFound if the word does not exist.
func (s *WordStore) MarkLearned(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE user_words
		SET learned = TRUE
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to mark word learned",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrWordNotFound
	}

	log.Info("word marked learned", slog.String("word_id", id.String()))
	return nil
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	err := row.Scan(
		&word.ID,
		&word.UserID,
		&word.Text,
		&word.Translation,
		&word.Phonetic,
		&word.ExampleSentence,
		&word.Language,
		&word.Learned,
		&word.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &word, nil
}
