package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/dbx"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, email, password_hash, avatar_key)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.AvatarKey).Scan(&id, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)

	for provider, providerID := range user.ProviderIDs {
		if err := r.LinkProvider(ctx, user.ID, provider, providerID); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	numID, err := strconv.ParseInt(common.CanonicalID(id), 10, 64)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, name, email, password_hash, avatar_key, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanUser(ctx, r.db.QueryRowContext(ctx, query, numID))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, avatar_key, created_at FROM users
		 WHERE email = $1
		 `

	return r.scanUser(ctx, r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByProviderID(ctx context.Context, provider, providerID string) (*models.User, error) {
	query :=
		`SELECT u.id, u.name, u.email, u.password_hash, u.avatar_key, u.created_at
		 FROM users u
		 JOIN user_identities i ON i.user_id = u.id
		 WHERE i.provider = $1 AND i.provider_id = $2
		 `

	return r.scanUser(ctx, r.db.QueryRowContext(ctx, query, provider, providerID))
}

func (r *PostgresRepository) LinkProvider(ctx context.Context, userID, provider, providerID string) error {
	numID, err := strconv.ParseInt(common.CanonicalID(userID), 10, 64)
	if err != nil {
		return common.ErrorNotFound
	}

	query :=
		`INSERT INTO user_identities (user_id, provider, provider_id)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, numID, provider, providerID); err != nil {
		if isUniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) scanUser(ctx context.Context, row *sql.Row) (*models.User, error) {
	var id int64
	user := &models.User{}

	err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarKey, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)

	providers, err := r.loadProviders(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ProviderIDs = providers

	return user, nil
}

func (r *PostgresRepository) loadProviders(ctx context.Context, userID int64) (map[string]string, error) {
	query :=
		`SELECT provider, provider_id FROM user_identities
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	providers := map[string]string{}
	for rows.Next() {
		var provider, providerID string
		if err := rows.Scan(&provider, &providerID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		providers[provider] = providerID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return providers, nil
}
