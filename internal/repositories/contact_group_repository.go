package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "dispatchapi/internal/db"
	"dispatchapi/internal/domain/models"
)

// ContactGroupRepository wraps `groups` and group_member.
// groups is a reserved word in MySQL 8, so the table name is always quoted.
type ContactGroupRepository struct {
	DB *sql.DB
}

func (r ContactGroupRepository) db() *sql.DB { return dbOr(r.DB) }

const groupColumns = `
	id, enterprise_id, COALESCE(name,''), description,
	COALESCE(pager_number,''), COALESCE(alternative_pager_number,''),
	escalation, escalation_interval, escalation_factor,
	COALESCE(fail_over_opids,''), COALESCE(fail_over_group_opids,''), COALESCE(fail_report_email,''),
	fail_over_include_original_message, latest_revision`

func scanGroup(row rowScanner) (models.Group, error) {
	var g models.Group
	var interval, factor sql.NullInt64
	err := row.Scan(
		&g.ID, &g.EnterpriseID, &g.Name, &g.Description,
		&g.PagerNumber, &g.AlternativePagerNumber,
		&g.Escalation, &interval, &factor,
		&g.FailOverOpids, &g.FailOverGroupOpids, &g.FailReportEmail,
		&g.FailOverIncludeOriginalMessage, &g.LatestRevision,
	)
	g.EscalationInterval = models.EscalationIntervalFromColumn(interval)
	g.EscalationFactor = models.EscalationFactorFromColumn(factor)
	return g, err
}

func (r ContactGroupRepository) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.Group, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+groupColumns+`
		FROM `+"`groups`"+`
		WHERE id > ? AND enterprise_id = ?
		ORDER BY id ASC`, lastID, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	out := []models.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r ContactGroupRepository) Get(ctx context.Context, enterpriseID, id int64) (models.Group, error) {
	return scanGroup(r.db().QueryRowContext(ctx, `
		SELECT `+groupColumns+`
		FROM `+"`groups`"+`
		WHERE id = ? AND enterprise_id = ?
		LIMIT 1`, id, enterpriseID))
}

// GetByMask finds the enterprise group whose OPID has the given mask.
func (r ContactGroupRepository) GetByMask(ctx context.Context, enterpriseID int64, mask string) (models.Group, error) {
	return scanGroup(r.db().QueryRowContext(ctx, `
		SELECT `+groupColumns+`
		FROM `+"`groups`"+`
		WHERE alternative_pager_number = ? AND enterprise_id = ?
		LIMIT 1`, mask, enterpriseID))
}

// Members lists the group members in escalation order, unordered members last.
func (r ContactGroupRepository) Members(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT group_id, account_id, escalation_order
		FROM group_member
		WHERE group_id = ?
		ORDER BY escalation_order IS NULL, escalation_order ASC, account_id ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query group members: %w", err)
	}
	defer rows.Close()

	out := []models.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.GroupID, &m.AccountID, &m.EscalationOrder); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindIDByMask returns the id of the group owning the OPID mask, or 0.
func (r ContactGroupRepository) FindIDByMask(ctx context.Context, mask string) (int64, error) {
	var id int64
	err := r.db().QueryRowContext(ctx, "SELECT id FROM `groups` WHERE alternative_pager_number = ? LIMIT 1", mask).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup group opid mask: %w", err)
	}
	return id, nil
}

func groupArgs(g models.Group) []any {
	return []any{
		g.Name, g.Description, g.PagerNumber, g.AlternativePagerNumber,
		g.Escalation, intdb.NullInt64(g.EscalationInterval.Column()), intdb.NullInt64(g.EscalationFactor.Column()),
		g.FailOverOpids, g.FailOverGroupOpids, g.FailReportEmail, g.FailOverIncludeOriginalMessage,
		g.LatestRevision,
	}
}

// Create inserts the group and its members.
func (r ContactGroupRepository) Create(ctx context.Context, g models.Group, members []models.GroupMember) (int64, error) {
	var id int64
	err := withTx(ctx, r.db(), func(tx *sql.Tx) error {
		args := append([]any{g.EnterpriseID}, groupArgs(g)...)
		res, err := tx.ExecContext(ctx, "INSERT INTO `groups` ("+`
			enterprise_id, name, description, pager_number, alternative_pager_number,
			escalation, escalation_interval, escalation_factor,
			fail_over_opids, fail_over_group_opids, fail_report_email, fail_over_include_original_message,
			latest_revision
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
		if err != nil {
			return fmt.Errorf("insert group: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return insertGroupMembers(ctx, tx, id, members)
	})
	return id, err
}

// Update writes g. A nil members slice keeps the current membership.
func (r ContactGroupRepository) Update(ctx context.Context, g models.Group, members []models.GroupMember) error {
	return withTx(ctx, r.db(), func(tx *sql.Tx) error {
		args := append(groupArgs(g), g.ID, g.EnterpriseID)
		if _, err := tx.ExecContext(ctx, "UPDATE `groups` SET"+`
			name = ?, description = ?, pager_number = ?, alternative_pager_number = ?,
			escalation = ?, escalation_interval = ?, escalation_factor = ?,
			fail_over_opids = ?, fail_over_group_opids = ?, fail_report_email = ?,
			fail_over_include_original_message = ?, latest_revision = ?
			WHERE id = ? AND enterprise_id = ?`, args...); err != nil {
			return fmt.Errorf("update group: %w", err)
		}
		if members == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM group_member WHERE group_id = ?`, g.ID); err != nil {
			return fmt.Errorf("clear group members: %w", err)
		}
		return insertGroupMembers(ctx, tx, g.ID, members)
	})
}

func insertGroupMembers(ctx context.Context, tx *sql.Tx, groupID int64, members []models.GroupMember) error {
	seen := map[int64]bool{}
	for _, m := range members {
		if seen[m.AccountID] {
			continue
		}
		seen[m.AccountID] = true
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO group_member (group_id, account_id, escalation_order) VALUES (?, ?, ?)`,
			groupID, m.AccountID, intdb.NullInt64(m.EscalationOrder)); err != nil {
			return fmt.Errorf("insert group member: %w", err)
		}
	}
	return nil
}

// AccountIDsInEnterprise filters ids down to active accounts of the enterprise.
func (r ContactGroupRepository) AccountIDsInEnterprise(ctx context.Context, enterpriseID int64, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	if len(ids) == 0 {
		return out, nil
	}
	args := append([]any{enterpriseID}, intdb.Int64Args(ids)...)
	rows, err := r.db().QueryContext(ctx, `
		SELECT id FROM accounts
		WHERE enterprise_id = ? AND active = 1 AND deleted = 0 AND id IN (`+intdb.Placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query enterprise accounts: %w", err)
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
