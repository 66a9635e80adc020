package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/rs/zerolog"
)

type UserRepository struct {
	base
}

func NewUserRepository(db Connector, logger *zerolog.Logger, slowQueryThreshold time.Duration) *UserRepository {
	return &UserRepository{base{db: db, logger: logger, slowQueryThreshold: slowQueryThreshold}}
}

// GetUser looks a user up by exact email. A missing user is (nil, nil).
func (r *UserRepository) GetUser(ctx context.Context, email string) (*model.User, error) {
	var out *model.User

	err := r.withConn(ctx, "GetUser", "Failed to fetch user.", func(conn *sql.Conn) error {
		stmt, args := userByEmailStatement(email)

		var err error
		out, err = queryOne(ctx, conn, stmt, args, scanUser)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
