package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (x *SQLite) PutUser(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}

	// INSERT OR IGNORE keeps the first CreatedAt on duplicate contact
	_, err := x.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, created_at) VALUES (?, ?)`,
		user.ID.String(), user.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to insert user", goerr.V("id", user.ID))
	}

	return nil
}

func (x *SQLite) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	row := x.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM users WHERE id = ?`, id.String(),
	)

	var userID, createdAt string
	if err := row.Scan(&userID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to scan user", goerr.V("id", id))
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse user timestamp", goerr.V("id", id))
	}

	return &model.User{
		ID:        types.UserID(userID),
		CreatedAt: ts,
	}, nil
}

func (x *SQLite) CountUsers(ctx context.Context) (int64, error) {
	row := x.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count users")
	}

	return count, nil
}
