package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// ItemReadRepository handles owner-scoped item reads
type ItemReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewItemReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ItemReadRepository {
	return &ItemReadRepository{db: db, txGetter: txGetter}
}

// ListByUserID returns all items owned by userID, newest first.
func (r *ItemReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ItemDB, error) {
	const query = `
		SELECT id, user_id, title, completed, created_at, updated_at
		FROM items
		WHERE user_id = $1
		ORDER BY id DESC
	`

	items := []models.ItemDB{}
	var err error
	if tx := r.txGetter(ctx); tx != nil {
		err = tx.SelectContext(ctx, &items, query, userID)
	} else {
		err = r.db.SelectContext(ctx, &items, query, userID)
	}

	logger.Log.Infow("item read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"count", len(items),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return items, nil
}

// ItemWriteRepository handles owner-scoped item writes
type ItemWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewItemWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ItemWriteRepository {
	return &ItemWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new item for userID and returns the generated id.
// completed always starts false.
func (r *ItemWriteRepository) Save(ctx context.Context, userID uuid.UUID, title string) (int64, error) {
	const query = `
		INSERT INTO items (user_id, title, completed, created_at, updated_at)
		VALUES ($1, $2, FALSE, NOW(), NOW())
		RETURNING id
	`
	args := []any{userID, title}

	var id int64
	var err error
	if tx := r.txGetter(ctx); tx != nil {
		err = tx.GetContext(ctx, &id, query, args...)
	} else {
		err = r.db.GetContext(ctx, &id, query, args...)
	}

	logger.Log.Infow("item write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update applies a partial update to an item owned by userID. Nil fields are
// left untouched. Returns the number of rows updated: 0 means the item does
// not exist for this owner, which includes items owned by someone else.
func (r *ItemWriteRepository) Update(ctx context.Context, userID uuid.UUID, itemID int64, title *string, completed *bool) (int64, error) {
	const query = `
		UPDATE items
		SET title = COALESCE($3, title),
		    completed = COALESCE($4, completed),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	args := []any{itemID, userID, title, completed}

	var res sql.Result
	var err error
	if tx := r.txGetter(ctx); tx != nil {
		res, err = tx.ExecContext(ctx, query, args...)
	} else {
		res, err = r.db.ExecContext(ctx, query, args...)
	}

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("item write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}

// Delete removes an item owned by userID. Returns the number of rows deleted
// (0 or 1); deleting an absent or foreign item is not an error.
func (r *ItemWriteRepository) Delete(ctx context.Context, userID uuid.UUID, itemID int64) (int64, error) {
	const query = `
		DELETE FROM items
		WHERE id = $1 AND user_id = $2
	`
	args := []any{itemID, userID}

	var res sql.Result
	var err error
	if tx := r.txGetter(ctx); tx != nil {
		res, err = tx.ExecContext(ctx, query, args...)
	} else {
		res, err = r.db.ExecContext(ctx, query, args...)
	}

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("item write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}
