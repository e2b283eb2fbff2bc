package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/dbx"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, label *models.Label) (*models.Label, error) {
	ownerID, err := parseID(label.UserID)
	if err != nil {
		return nil, err
	}

	color := label.Color
	if color == "" {
		color = models.DefaultLabelColor
	}

	query :=
		`INSERT INTO labels (user_id, name, color)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, name, color
		 `

	return scanLabel(r.db.QueryRowContext(ctx, query, ownerID, label.Name, color))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Label, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, name, color FROM labels WHERE id = $1`

	return scanLabel(r.db.QueryRowContext(ctx, query, numID))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Label, error) {
	numID, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}

	query :=
		`SELECT id, user_id, name, color FROM labels
		 WHERE user_id = $1
		 ORDER BY LOWER(name) ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, numID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.Label{}
	for rows.Next() {
		var id, userID int64
		l := &models.Label{}
		if err := rows.Scan(&id, &userID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		l.ID = strconv.FormatInt(id, 10)
		l.UserID = strconv.FormatInt(userID, 10)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.LabelUpdate) (*models.Label, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Name != nil {
		set = append(set, "name = "+arg(*patch.Name))
	}
	if patch.Color != nil {
		color := *patch.Color
		if color == "" {
			color = models.DefaultLabelColor
		}
		set = append(set, "color = "+arg(color))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf("UPDATE labels SET %s WHERE id = %s RETURNING id, user_id, name, color",
		strings.Join(set, ", "), arg(numID))

	return scanLabel(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	numID, err := parseID(id)
	if err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1`, numID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func scanLabel(row *sql.Row) (*models.Label, error) {
	var id, userID int64
	l := &models.Label{}

	err := row.Scan(&id, &userID, &l.Name, &l.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	l.ID = strconv.FormatInt(id, 10)
	l.UserID = strconv.FormatInt(userID, 10)
	return l, nil
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(common.CanonicalID(id), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return n, nil
}
