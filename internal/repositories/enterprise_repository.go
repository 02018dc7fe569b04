package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"dispatchapi/internal/domain/models"
)

// EnterpriseRepository reads and updates tenant settings.
type EnterpriseRepository struct {
	DB *sql.DB
}

func (r EnterpriseRepository) db() *sql.DB { return dbOr(r.DB) }

func (r EnterpriseRepository) Get(ctx context.Context, id int64) (models.Enterprise, error) {
	var e models.Enterprise
	err := r.db().QueryRowContext(ctx, `
		SELECT id, COALESCE(super_admin_email,''), COALESCE(logout_timeout,0)
		FROM enterprises
		WHERE id = ?
		LIMIT 1`, id).Scan(&e.ID, &e.SuperAdminEmail, &e.LogoutTimeout)
	return e, err
}

func (r EnterpriseRepository) SetLogoutTimeout(ctx context.Context, id int64, minutes int) error {
	if _, err := r.db().ExecContext(ctx, `UPDATE enterprises SET logout_timeout = ? WHERE id = ?`, minutes, id); err != nil {
		return fmt.Errorf("update enterprise logout timeout: %w", err)
	}
	return nil
}
