package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"dispatchapi/internal/domain/models"
)

// ContactRepository wraps accounts and their devices.
type ContactRepository struct {
	DB *sql.DB
}

func (r ContactRepository) db() *sql.DB { return dbOr(r.DB) }

const accountStatusColumns = `
	a.id, a.enterprise_id, COALESCE(a.pager_number,''), COALESCE(a.alternative_pager_number,''),
	COALESCE(a.first_name,''), COALESCE(a.last_name,''), COALESCE(a.email,''), COALESCE(a.phone_number,''),
	a.active, a.deleted, a.created_at,
	EXISTS(SELECT 1 FROM devices d WHERE d.account_id = a.id),
	COALESCE((SELECT MAX(d.pager_on) FROM devices d WHERE d.account_id = a.id), 0)`

func scanAccountStatus(row rowScanner) (models.AccountStatus, error) {
	var s models.AccountStatus
	a := &s.Account
	err := row.Scan(
		&a.ID, &a.EnterpriseID, &a.PagerNumber, &a.AlternativePagerNumber,
		&a.FirstName, &a.LastName, &a.Email, &a.PhoneNumber,
		&a.Active, &a.Deleted, &a.CreatedAt,
		&s.HasDevice, &s.PagerOn,
	)
	return s, err
}

// FetchActiveAfter lists active, non deleted accounts with id > lastID ordered by id,
// each with its device state.
func (r ContactRepository) FetchActiveAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.AccountStatus, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+accountStatusColumns+`
		FROM accounts a
		WHERE a.id > ? AND a.enterprise_id = ? AND a.active = 1 AND a.deleted = 0
		ORDER BY a.id ASC`, lastID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	out := []models.AccountStatus{}
	for rows.Next() {
		s, err := scanAccountStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ContactRepository) GetActive(ctx context.Context, enterpriseID, id int64) (models.AccountStatus, error) {
	return scanAccountStatus(r.db().QueryRowContext(ctx, `
		SELECT `+accountStatusColumns+`
		FROM accounts a
		WHERE a.id = ? AND a.enterprise_id = ? AND a.active = 1 AND a.deleted = 0
		LIMIT 1`, id, enterpriseID))
}

func (r ContactRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.db().QueryRowContext(ctx, `SELECT id FROM accounts WHERE email = ? LIMIT 1`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup account email: %w", err)
	}
	return true, nil
}

// FindIDByMask returns the id of the account owning the OPID mask, or 0.
func (r ContactRepository) FindIDByMask(ctx context.Context, mask string) (int64, error) {
	var id int64
	err := r.db().QueryRowContext(ctx, `
		SELECT id FROM accounts WHERE alternative_pager_number = ? LIMIT 1`, mask).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup account opid mask: %w", err)
	}
	return id, nil
}

// GetActiveByMask finds the active account of the enterprise whose OPID has the given mask.
func (r ContactRepository) GetActiveByMask(ctx context.Context, enterpriseID int64, mask string) (models.AccountStatus, error) {
	return scanAccountStatus(r.db().QueryRowContext(ctx, `
		SELECT `+accountStatusColumns+`
		FROM accounts a
		WHERE a.alternative_pager_number = ? AND a.enterprise_id = ? AND a.active = 1 AND a.deleted = 0
		LIMIT 1`, mask, enterpriseID))
}

func (r ContactRepository) Create(ctx context.Context, a models.Account) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO accounts (
			enterprise_id, pager_number, alternative_pager_number, first_name, last_name,
			email, phone_number, password, active, deleted, created_at
		) VALUES (?,?,?,?,?,?,?,?,1,0,?)`,
		a.EnterpriseID, a.PagerNumber, a.AlternativePagerNumber, a.FirstName, a.LastName,
		a.Email, a.PhoneNumber, a.PasswordHash, a.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return res.LastInsertId()
}

// GroupNames lists the contact groups the account is a member of.
func (r ContactRepository) GroupNames(ctx context.Context, enterpriseID, accountID int64) ([]string, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT g.name
		FROM group_member m
		JOIN `+"`groups`"+` g ON g.id = m.group_id
		WHERE m.account_id = ? AND g.enterprise_id = ?
		ORDER BY g.id ASC`, accountID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query account groups: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
