package vocabulary

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ginnybot/internal/database"
)

// Repository defines persistence operations for articles and vocabulary items.
type Repository interface {
	SaveArticle(ctx context.Context, title, content string) (int64, error)
	SaveVocabularies(ctx context.Context, articleID *int64, items []Item) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// SaveArticle inserts an article and returns its generated id.
func (r *DBRepository) SaveArticle(ctx context.Context, title, content string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO articles (title, content) VALUES (?, ?)",
		title, content)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("article last insert id: %w", err)
	}
	return id, nil
}

// SaveVocabularies inserts one row per item inside a single transaction.
// When articleID is non-nil every row is associated with that article.
// On any insert failure the transaction is rolled back and nothing from the
// batch is persisted.
func (r *DBRepository) SaveVocabularies(ctx context.Context, articleID *int64, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, item := range items {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO vocabularies (article_id, german, english, chinese, sentence) VALUES (?, ?, ?, ?, ?)",
				articleID, item.German, item.English, item.Chinese, item.Sentence,
			); err != nil {
				return fmt.Errorf("insert vocabulary %q: %w", item.German, err)
			}
		}
		return nil
	})
}
