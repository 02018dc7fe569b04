package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "dispatchapi/internal/db"
	"dispatchapi/internal/domain/models"
)

// AdministratorRepository wraps DB access for dispatchers.
type AdministratorRepository struct {
	DB *sql.DB
}

func (r AdministratorRepository) db() *sql.DB { return dbOr(r.DB) }

const dispatcherColumns = `
	id, enterprise_id,
	COALESCE(first_name,''), COALESCE(last_name,''), COALESCE(email,''), COALESCE(phone_number,''),
	COALESCE(password,''), COALESCE(admin_type,''), active, deleted, created_at,
	can_add_group_flag, can_delete_contact_flag, can_edit_contact_flag, can_add_contact_flag,
	can_add_contact_to_group_flag, can_remove_contact_from_group_flag, can_delete_group_flag,
	can_edit_group_flag, can_add_escalation_flag, can_edit_escalation_flag,
	can_view_schedule, can_edit_schedule, view_reports_flag`

func scanDispatcher(row rowScanner) (models.Dispatcher, error) {
	var d models.Dispatcher
	p := &d.Permissions
	err := row.Scan(
		&d.ID, &d.EnterpriseID,
		&d.FirstName, &d.LastName, &d.Email, &d.PhoneNumber,
		&d.PasswordHash, &d.AdminType, &d.Active, &d.Deleted, &d.CreatedAt,
		&p.CanAddGroup, &p.CanDeleteContact, &p.CanEditContact, &p.CanAddContact,
		&p.CanAddContactToGroup, &p.CanRemoveContactFromGroup, &p.CanDeleteGroup,
		&p.CanEditGroup, &p.CanAddEscalation, &p.CanEditEscalation,
		&p.CanViewSchedule, &p.CanEditSchedule, &p.ViewReports,
	)
	return d, err
}

// FetchActiveAfter lists active, non deleted dispatchers with id > lastID ordered by id.
func (r AdministratorRepository) FetchActiveAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.Dispatcher, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+dispatcherColumns+`
		FROM dispatchers
		WHERE id > ? AND enterprise_id = ? AND active = 1 AND deleted = 0
		ORDER BY id ASC`, lastID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query dispatchers: %w", err)
	}
	defer rows.Close()

	out := []models.Dispatcher{}
	for rows.Next() {
		d, err := scanDispatcher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispatcher: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetActive loads an active, non deleted dispatcher. Missing rows yield sql.ErrNoRows.
func (r AdministratorRepository) GetActive(ctx context.Context, enterpriseID, id int64) (models.Dispatcher, error) {
	return scanDispatcher(r.db().QueryRowContext(ctx, `
		SELECT `+dispatcherColumns+`
		FROM dispatchers
		WHERE id = ? AND enterprise_id = ? AND active = 1 AND deleted = 0
		LIMIT 1`, id, enterpriseID))
}

// Get loads a dispatcher regardless of its state.
func (r AdministratorRepository) Get(ctx context.Context, enterpriseID, id int64) (models.Dispatcher, error) {
	return scanDispatcher(r.db().QueryRowContext(ctx, `
		SELECT `+dispatcherColumns+`
		FROM dispatchers
		WHERE id = ? AND enterprise_id = ?
		LIMIT 1`, id, enterpriseID))
}

// EmailExists checks the address across every enterprise.
func (r AdministratorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.db().QueryRowContext(ctx, `SELECT id FROM dispatchers WHERE email = ? LIMIT 1`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup dispatcher email: %w", err)
	}
	return true, nil
}

func permissionArgs(p models.DispatcherPermissions) []any {
	return []any{
		p.CanAddGroup, p.CanDeleteContact, p.CanEditContact, p.CanAddContact,
		p.CanAddContactToGroup, p.CanRemoveContactFromGroup, p.CanDeleteGroup,
		p.CanEditGroup, p.CanAddEscalation, p.CanEditEscalation,
		p.CanViewSchedule, p.CanEditSchedule, p.ViewReports,
	}
}

func (r AdministratorRepository) Create(ctx context.Context, d models.Dispatcher) (int64, error) {
	args := []any{d.EnterpriseID, d.FirstName, d.LastName, d.Email, d.PhoneNumber, d.PasswordHash, d.AdminType, d.CreatedAt}
	args = append(args, permissionArgs(d.Permissions)...)
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO dispatchers (
			enterprise_id, first_name, last_name, email, phone_number, password, admin_type,
			active, deleted, created_at,
			can_add_group_flag, can_delete_contact_flag, can_edit_contact_flag, can_add_contact_flag,
			can_add_contact_to_group_flag, can_remove_contact_from_group_flag, can_delete_group_flag,
			can_edit_group_flag, can_add_escalation_flag, can_edit_escalation_flag,
			can_view_schedule, can_edit_schedule, view_reports_flag
		) VALUES (?,?,?,?,?,?,?,1,0,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return 0, fmt.Errorf("insert dispatcher: %w", err)
	}
	return res.LastInsertId()
}

// Update writes the mutable columns of d.
func (r AdministratorRepository) Update(ctx context.Context, d models.Dispatcher) error {
	args := []any{d.FirstName, d.LastName, d.PhoneNumber, d.PasswordHash, d.AdminType}
	args = append(args, permissionArgs(d.Permissions)...)
	args = append(args, d.ID, d.EnterpriseID)
	_, err := r.db().ExecContext(ctx, `
		UPDATE dispatchers SET
			first_name = ?, last_name = ?, phone_number = ?, password = ?, admin_type = ?,
			can_add_group_flag = ?, can_delete_contact_flag = ?, can_edit_contact_flag = ?, can_add_contact_flag = ?,
			can_add_contact_to_group_flag = ?, can_remove_contact_from_group_flag = ?, can_delete_group_flag = ?,
			can_edit_group_flag = ?, can_add_escalation_flag = ?, can_edit_escalation_flag = ?,
			can_view_schedule = ?, can_edit_schedule = ?, view_reports_flag = ?
		WHERE id = ? AND enterprise_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update dispatcher: %w", err)
	}
	return nil
}

// SoftDelete deactivates the dispatcher and returns the affected row count.
func (r AdministratorRepository) SoftDelete(ctx context.Context, enterpriseID, id int64) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE dispatchers SET active = 0, deleted = 1
		WHERE id = ? AND enterprise_id = ?`, id, enterpriseID)
	if err != nil {
		return 0, fmt.Errorf("delete dispatcher: %w", err)
	}
	return res.RowsAffected()
}

// GroupNames lists the names of the admin groups the dispatcher belongs to.
func (r AdministratorRepository) GroupNames(ctx context.Context, enterpriseID, dispatcherID int64) ([]string, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT g.name
		FROM admin_group_members m
		JOIN admin_groups g ON g.id = m.admin_group_id
		WHERE m.dispatcher_id = ? AND g.enterprise_id = ?
		ORDER BY g.id ASC`, dispatcherID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query dispatcher groups: %w", err)
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

// IDsInEnterprise filters ids down to dispatchers of the enterprise.
func (r AdministratorRepository) IDsInEnterprise(ctx context.Context, enterpriseID int64, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	if len(ids) == 0 {
		return out, nil
	}
	args := append([]any{enterpriseID}, intdb.Int64Args(ids)...)
	rows, err := r.db().QueryContext(ctx, `
		SELECT id FROM dispatchers
		WHERE enterprise_id = ? AND id IN (`+intdb.Placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query enterprise dispatchers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// SetGroups replaces the dispatcher's admin group memberships with groupIDs,
// ignoring groups of other enterprises.
func (r AdministratorRepository) SetGroups(ctx context.Context, enterpriseID, dispatcherID int64, groupIDs []int64) error {
	return withTx(ctx, r.db(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE m FROM admin_group_members m
			JOIN admin_groups g ON g.id = m.admin_group_id
			WHERE m.dispatcher_id = ? AND g.enterprise_id = ?`, dispatcherID, enterpriseID); err != nil {
			return fmt.Errorf("clear dispatcher groups: %w", err)
		}
		if len(groupIDs) == 0 {
			return nil
		}
		args := append([]any{dispatcherID, enterpriseID}, intdb.Int64Args(groupIDs)...)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO admin_group_members (admin_group_id, dispatcher_id)
			SELECT id, ? FROM admin_groups
			WHERE enterprise_id = ? AND id IN (`+intdb.Placeholders(len(groupIDs))+`)`, args...); err != nil {
			return fmt.Errorf("insert dispatcher groups: %w", err)
		}
		return nil
	})
}
