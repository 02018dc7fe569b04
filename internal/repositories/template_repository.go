package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "dispatchapi/internal/db"
	"dispatchapi/internal/domain/models"
)

// TemplateRepository wraps message_templates.
type TemplateRepository struct {
	DB *sql.DB
}

func (r TemplateRepository) db() *sql.DB { return dbOr(r.DB) }

const templateColumns = `
	id, enterprise_id, COALESCE(name,''), COALESCE(subject,''), COALESCE(body,''),
	COALESCE(predefined_replies,''), sync_to_device, updated_at`

func scanTemplate(row rowScanner) (models.MessageTemplate, error) {
	var t models.MessageTemplate
	err := row.Scan(&t.ID, &t.EnterpriseID, &t.Name, &t.Subject, &t.Body, &t.PredefinedReplies, &t.SyncToDevice, &t.UpdatedAt)
	return t, err
}

func (r TemplateRepository) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.MessageTemplate, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+templateColumns+`
		FROM message_templates
		WHERE id > ? AND enterprise_id = ?
		ORDER BY id ASC`, lastID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	out := []models.MessageTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TemplateRepository) Get(ctx context.Context, enterpriseID, id int64) (models.MessageTemplate, error) {
	return scanTemplate(r.db().QueryRowContext(ctx, `
		SELECT `+templateColumns+`
		FROM message_templates
		WHERE id = ? AND enterprise_id = ?
		LIMIT 1`, id, enterpriseID))
}

func (r TemplateRepository) Create(ctx context.Context, t models.MessageTemplate) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO message_templates (enterprise_id, name, subject, body, predefined_replies, sync_to_device, updated_at)
		VALUES (?,?,?,?,?,?,?)`,
		t.EnterpriseID, t.Name, t.Subject, t.Body, intdb.NullIfEmpty(t.PredefinedReplies), t.SyncToDevice, t.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}
	return res.LastInsertId()
}

// TemplatePatch carries the columns to change; nil fields are left untouched.
type TemplatePatch struct {
	Name              *string
	Subject           *string
	Body              *string
	PredefinedReplies *string
	SyncToDevice      *bool
}

// UpdatePartial applies patch. updated_at is always bumped.
func (r TemplateRepository) UpdatePartial(ctx context.Context, enterpriseID, id int64, patch TemplatePatch, now time.Time) error {
	sets := []string{}
	args := []any{}
	add := func(column string, val any) {
		sets = append(sets, column+"=?")
		args = append(args, val)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Subject != nil {
		add("subject", *patch.Subject)
	}
	if patch.Body != nil {
		add("body", *patch.Body)
	}
	if patch.PredefinedReplies != nil {
		add("predefined_replies", intdb.NullIfEmpty(*patch.PredefinedReplies))
	}
	if patch.SyncToDevice != nil {
		add("sync_to_device", *patch.SyncToDevice)
	}
	add("updated_at", now)

	args = append(args, id, enterpriseID)
	if _, err := r.db().ExecContext(ctx,
		`UPDATE message_templates SET `+strings.Join(sets, ", ")+` WHERE id=? AND enterprise_id=?`, args...); err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

func (r TemplateRepository) Delete(ctx context.Context, enterpriseID, id int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM message_templates WHERE id = ? AND enterprise_id = ?`, id, enterpriseID)
	if err != nil {
		return 0, fmt.Errorf("delete template: %w", err)
	}
	return res.RowsAffected()
}
