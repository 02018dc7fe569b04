package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"dispatchapi/internal/domain/models"
)

// AdminGroupRepository wraps admin_groups and admin_group_members.
type AdminGroupRepository struct {
	DB *sql.DB
}

func (r AdminGroupRepository) db() *sql.DB { return dbOr(r.DB) }

func (r AdminGroupRepository) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.AdminGroup, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT id, enterprise_id, COALESCE(name,'')
		FROM admin_groups
		WHERE id > ? AND enterprise_id = ?
		ORDER BY id ASC`, lastID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query admin groups: %w", err)
	}
	defer rows.Close()

	out := []models.AdminGroup{}
	for rows.Next() {
		var g models.AdminGroup
		if err := rows.Scan(&g.ID, &g.EnterpriseID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan admin group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r AdminGroupRepository) Get(ctx context.Context, enterpriseID, id int64) (models.AdminGroup, error) {
	var g models.AdminGroup
	err := r.db().QueryRowContext(ctx, `
		SELECT id, enterprise_id, COALESCE(name,'')
		FROM admin_groups
		WHERE id = ? AND enterprise_id = ?
		LIMIT 1`, id, enterpriseID).Scan(&g.ID, &g.EnterpriseID, &g.Name)
	return g, err
}

// MemberIDs lists the dispatcher ids of the group ordered by id.
func (r AdminGroupRepository) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT dispatcher_id FROM admin_group_members
		WHERE admin_group_id = ?
		ORDER BY dispatcher_id ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query admin group members: %w", err)
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Create inserts the group together with its members.
func (r AdminGroupRepository) Create(ctx context.Context, enterpriseID int64, name string, members []int64) (int64, error) {
	var id int64
	err := withTx(ctx, r.db(), func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO admin_groups (enterprise_id, name) VALUES (?, ?)`, enterpriseID, name)
		if err != nil {
			return fmt.Errorf("insert admin group: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return insertAdminGroupMembers(ctx, tx, id, members)
	})
	return id, err
}

// Update renames the group. A nil members slice keeps the current membership,
// anything else replaces it.
func (r AdminGroupRepository) Update(ctx context.Context, enterpriseID, id int64, name string, members []int64) error {
	return withTx(ctx, r.db(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE admin_groups SET name = ?
			WHERE id = ? AND enterprise_id = ?`, name, id, enterpriseID); err != nil {
			return fmt.Errorf("update admin group: %w", err)
		}
		if members == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM admin_group_members WHERE admin_group_id = ?`, id); err != nil {
			return fmt.Errorf("clear admin group members: %w", err)
		}
		return insertAdminGroupMembers(ctx, tx, id, members)
	})
}

// Delete removes the members and then the group, returning the deleted group count.
func (r AdminGroupRepository) Delete(ctx context.Context, enterpriseID, id int64) (int64, error) {
	var n int64
	err := withTx(ctx, r.db(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM admin_group_members WHERE admin_group_id = ?`, id); err != nil {
			return fmt.Errorf("delete admin group members: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM admin_groups WHERE id = ? AND enterprise_id = ?`, id, enterpriseID)
		if err != nil {
			return fmt.Errorf("delete admin group: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, err
}

func insertAdminGroupMembers(ctx context.Context, tx *sql.Tx, groupID int64, members []int64) error {
	seen := map[int64]bool{}
	for _, dispatcherID := range members {
		if seen[dispatcherID] {
			continue
		}
		seen[dispatcherID] = true
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO admin_group_members (admin_group_id, dispatcher_id) VALUES (?, ?)`, groupID, dispatcherID); err != nil {
			return fmt.Errorf("insert admin group member: %w", err)
		}
	}
	return nil
}
