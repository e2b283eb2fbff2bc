package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/dbx"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

// PostgresRepository keeps the label set on the note row as a JSONB array,
// matching the note-owns-its-label-set shape of the data model.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const noteColumns = "id, user_id, title, content, summary, pinned, archived, label_ids, background_color, font_size, created_at, updated_at"

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	ownerID, err := parseID(note.UserID)
	if err != nil {
		return nil, err
	}

	stored := cloneNote(note)
	applyDefaults(stored)

	labels, err := json.Marshal(stored.LabelIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal labels: %w", err)
	}

	query :=
		`INSERT INTO notes (user_id, title, content, summary, pinned, archived, label_ids, background_color, font_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING ` + noteColumns

	return r.scanNote(r.db.QueryRowContext(ctx, query,
		ownerID, stored.Title, stored.Content, stored.Summary,
		stored.Pinned, stored.Archived, labels, stored.Color, stored.FontSize))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	return r.scanNote(r.db.QueryRowContext(ctx, query, numID))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	numID, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}

	// id ascending reproduces insertion order for updated_at ties
	query := `SELECT ` + noteColumns + ` FROM notes
		 WHERE user_id = $1
		 ORDER BY pinned DESC, updated_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, numID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.Note{}
	for rows.Next() {
		n, err := r.scanNoteRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.NoteUpdate) (*models.Note, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := []string{"updated_at = now()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Title != nil {
		set = append(set, "title = "+arg(*patch.Title))
	}
	if patch.Content != nil {
		set = append(set, "content = "+arg(*patch.Content))
	}
	if patch.Summary != nil {
		set = append(set, "summary = "+arg(*patch.Summary))
	}
	if patch.Pinned != nil {
		set = append(set, "pinned = "+arg(*patch.Pinned))
	}
	if patch.Archived != nil {
		set = append(set, "archived = "+arg(*patch.Archived))
	}
	if patch.LabelIDs != nil {
		labels, err := json.Marshal(*patch.LabelIDs)
		if err != nil {
			return nil, fmt.Errorf("marshal labels: %w", err)
		}
		set = append(set, "label_ids = "+arg(labels))
	}
	if patch.Color != nil {
		set = append(set, "background_color = "+arg(*patch.Color))
	}
	if patch.FontSize != nil {
		set = append(set, "font_size = "+arg(*patch.FontSize))
	}

	query := fmt.Sprintf("UPDATE notes SET %s WHERE id = %s RETURNING %s",
		strings.Join(set, ", "), arg(numID), noteColumns)

	return r.scanNote(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	numID, err := parseID(id)
	if err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, numID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) RemoveLabelFromAll(ctx context.Context, ownerID, labelID string) error {
	numID, err := parseID(ownerID)
	if err != nil {
		return err
	}

	query :=
		`UPDATE notes
		 SET label_ids = label_ids - $2, updated_at = now()
		 WHERE user_id = $1 AND jsonb_exists(label_ids, $2)`

	if _, err := r.db.ExecContext(ctx, query, numID, common.CanonicalID(labelID)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanNote(row *sql.Row) (*models.Note, error) {
	n, err := r.scanNoteRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *PostgresRepository) scanNoteRow(row rowScanner) (*models.Note, error) {
	var (
		id, userID int64
		labelsRaw  []byte
	)
	n := &models.Note{}

	err := row.Scan(&id, &userID, &n.Title, &n.Content, &n.Summary,
		&n.Pinned, &n.Archived, &labelsRaw, &n.Color, &n.FontSize,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	n.ID = strconv.FormatInt(id, 10)
	n.UserID = strconv.FormatInt(userID, 10)

	if err := json.Unmarshal(labelsRaw, &n.LabelIDs); err != nil {
		return nil, fmt.Errorf("unmarshal labels: %w", err)
	}
	if n.LabelIDs == nil {
		n.LabelIDs = []string{}
	}

	return n, nil
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(common.CanonicalID(id), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return n, nil
}
