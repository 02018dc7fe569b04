package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"dispatchapi/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var dispatcherCols = []string{
	"id", "enterprise_id", "first_name", "last_name", "email", "phone_number",
	"password", "admin_type", "active", "deleted", "created_at",
	"can_add_group_flag", "can_delete_contact_flag", "can_edit_contact_flag", "can_add_contact_flag",
	"can_add_contact_to_group_flag", "can_remove_contact_from_group_flag", "can_delete_group_flag",
	"can_edit_group_flag", "can_add_escalation_flag", "can_edit_escalation_flag",
	"can_view_schedule", "can_edit_schedule", "view_reports_flag",
}

func dispatcherRow(rows *sqlmock.Rows, id int64, email string) *sqlmock.Rows {
	return rows.AddRow(id, 7, "Ann", "Lee", email, "+15550001111", "hash", models.AdminTypeDispatcher, true, false, time.Unix(0, 0),
		true, false, false, false, false, false, false, false, false, false, false, false, true)
}

func TestAdministratorFetchActiveAfter(t *testing.T) {
	db, mock := newMock(t)

	rows := sqlmock.NewRows(dispatcherCols)
	dispatcherRow(rows, 11, "a@x.io")
	dispatcherRow(rows, 12, "b@x.io")
	mock.ExpectQuery("FROM dispatchers\\s+WHERE id > \\? AND enterprise_id = \\? AND active = 1 AND deleted = 0\\s+ORDER BY id ASC").
		WithArgs(int64(10), int64(7)).
		WillReturnRows(rows)

	got, err := AdministratorRepository{DB: db}.FetchActiveAfter(context.Background(), 7, 10)
	if err != nil {
		t.Fatalf("FetchActiveAfter error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 11 || got[1].Email != "b@x.io" {
		t.Fatalf("unexpected dispatchers: %+v", got)
	}
	if !got[0].Permissions.CanAddGroup || !got[0].Permissions.ViewReports || got[0].Permissions.CanEditGroup {
		t.Fatalf("permissions not scanned: %+v", got[0].Permissions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdministratorGetActiveNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM dispatchers").WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows(dispatcherCols))

	_, err := AdministratorRepository{DB: db}.GetActive(context.Background(), 7, 5)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestAdministratorIDsInEnterprise(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id FROM dispatchers\\s+WHERE enterprise_id = \\? AND id IN \\(\\?,\\?,\\?\\)").
		WithArgs(int64(7), int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))

	got, err := AdministratorRepository{DB: db}.IDsInEnterprise(context.Background(), 7, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("IDsInEnterprise error: %v", err)
	}
	if !got[1] || got[2] || !got[3] {
		t.Fatalf("unexpected membership: %v", got)
	}

	empty, err := AdministratorRepository{DB: db}.IDsInEnterprise(context.Background(), 7, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty ids should not query, got %v %v", empty, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdministratorSoftDelete(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE dispatchers SET active = 0, deleted = 1").
		WithArgs(int64(9), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := AdministratorRepository{DB: db}.SoftDelete(context.Background(), 7, 9)
	if err != nil || n != 1 {
		t.Fatalf("SoftDelete = %d, %v", n, err)
	}
}

func TestAdminGroupUpdateReplacesMembers(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE admin_groups SET name = \\?").WithArgs("Night shift", int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM admin_group_members WHERE admin_group_id = \\?").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO admin_group_members").WithArgs(int64(3), int64(21)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO admin_group_members").WithArgs(int64(3), int64(22)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := AdminGroupRepository{DB: db}.Update(context.Background(), 7, 3, "Night shift", []int64{21, 22, 21})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdminGroupUpdateKeepsMembersWhenNil(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE admin_groups SET name = \\?").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := (AdminGroupRepository{DB: db}).Update(context.Background(), 7, 3, "Day", nil); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdminGroupDeleteRollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM admin_group_members").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM admin_groups").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	if _, err := (AdminGroupRepository{DB: db}).Delete(context.Background(), 7, 3); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactFetchActiveAfterScansDeviceState(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "enterprise_id", "pager_number", "alternative_pager_number", "first_name", "last_name",
		"email", "phone_number", "active", "deleted", "created_at", "has_device", "pager_on"}
	mock.ExpectQuery("FROM accounts a\\s+WHERE a.id > \\? AND a.enterprise_id = \\?").
		WithArgs(int64(0), int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 7, "JDOE", "jdoe", "John", "Doe", "j@x.io", "+1", true, false, time.Unix(0, 0), 1, 1).
			AddRow(2, 7, "ASMITH", "asmith", "Ann", "Smith", "a@x.io", "+1", true, false, time.Unix(0, 0), 0, 0))

	got, err := ContactRepository{DB: db}.FetchActiveAfter(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("FetchActiveAfter error: %v", err)
	}
	if got[0].State() != models.DeviceLoggedIn || got[1].State() != models.DeviceLoggedOff {
		t.Fatalf("unexpected states: %s %s", got[0].State(), got[1].State())
	}
}

func TestContactFindIDByMask(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id FROM accounts WHERE alternative_pager_number = \\?").WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery("SELECT id FROM accounts WHERE alternative_pager_number = \\?").WithArgs("free").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := ContactRepository{DB: db}
	if id, err := repo.FindIDByMask(context.Background(), "jdoe"); err != nil || id != 4 {
		t.Fatalf("FindIDByMask(jdoe) = %d, %v", id, err)
	}
	if id, err := repo.FindIDByMask(context.Background(), "free"); err != nil || id != 0 {
		t.Fatalf("FindIDByMask(free) = %d, %v", id, err)
	}
}

func TestContactGroupCreateQuotesTable(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `groups`").
		WithArgs(int64(7), "Ops", sqlmock.AnyArg(), "OPS", "ops", true, int64(5), int64(1),
			"", "", "", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(40, 1))
	mock.ExpectExec("INSERT INTO group_member").WithArgs(int64(40), int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO group_member").WithArgs(int64(40), int64(4), nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	g := models.Group{
		EnterpriseID:           7,
		Name:                   "Ops",
		PagerNumber:            "OPS",
		AlternativePagerNumber: "ops",
		Escalation:             true,
		EscalationInterval:     5,
		EscalationFactor:       models.EscalationFactorRead,
		LatestRevision:         time.Now(),
	}
	members := []models.GroupMember{
		{AccountID: 3, EscalationOrder: sql.NullInt64{Int64: 1, Valid: true}},
		{AccountID: 4},
	}
	id, err := ContactGroupRepository{DB: db}.Create(context.Background(), g, members)
	if err != nil || id != 40 {
		t.Fatalf("Create = %d, %v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactGroupGetMapsEscalationColumns(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "enterprise_id", "name", "description", "pager_number", "alternative_pager_number",
		"escalation", "escalation_interval", "escalation_factor", "fail_over_opids", "fail_over_group_opids",
		"fail_report_email", "fail_over_include_original_message", "latest_revision"}
	mock.ExpectQuery("FROM `groups`\\s+WHERE id = \\? AND enterprise_id = \\?").WithArgs(int64(40), int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(40, 7, "Ops", nil, "OPS", "ops", true, 60, 2, "3;4", "", "a@x.io", true, time.Unix(0, 0)))

	g, err := ContactGroupRepository{DB: db}.Get(context.Background(), 7, 40)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if g.EscalationInterval.Label() != "1 hour" || g.EscalationFactor != models.EscalationFactorReplied {
		t.Fatalf("unexpected escalation mapping: %s %s", g.EscalationInterval.Label(), g.EscalationFactor)
	}
	if g.Description.Valid {
		t.Fatalf("NULL description should stay invalid")
	}
}

func TestTemplateUpdatePartialOnlyTouchesGivenColumns(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec("UPDATE message_templates SET subject=\\?, predefined_replies=\\?, updated_at=\\? WHERE id=\\? AND enterprise_id=\\?").
		WithArgs("New subject", "Yes;No", now, int64(5), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	subject := "New subject"
	replies := "Yes;No"
	if err := (TemplateRepository{DB: db}).UpdatePartial(context.Background(), 7, 5, TemplatePatch{Subject: &subject, PredefinedReplies: &replies}, now); err != nil {
		t.Fatalf("UpdatePartial: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttachmentGetByFileID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM nps_attachments\\s+WHERE file_id = \\?").WithArgs("f-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "file_id", "file_name", "file_size", "file_type", "mime_type", "file_data", "created_at"}).
			AddRow(1, "f-1", "a.pdf", 3, 5, "application/pdf", []byte("abc"), time.Unix(0, 0)))

	a, err := AttachmentRepository{DB: db}.GetByFileID(context.Background(), "f-1")
	if err != nil {
		t.Fatalf("GetByFileID error: %v", err)
	}
	if a.FileType != models.AttachmentPDF || string(a.Data) != "abc" {
		t.Fatalf("unexpected attachment: %+v", a)
	}
}

func TestAPITokenLooksUpDigest(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM public_api_tokens\\s+WHERE token = \\? AND active = 1").
		WithArgs(HashToken("secret-token")).
		WillReturnRows(sqlmock.NewRows([]string{"enterprise_id"}).AddRow(7))

	id, err := APITokenRepository{DB: db}.EnterpriseForToken(context.Background(), "secret-token")
	if err != nil || id != 7 {
		t.Fatalf("EnterpriseForToken = %d, %v", id, err)
	}
	if len(HashToken("x")) != 64 {
		t.Fatalf("expected hex sha256 digest")
	}
}

func TestPageCreateRollsBackOnRecipientFailure(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(int64(7), int64(40), models.SenderAPI, "Public API", "7", "Hi", "", models.PriorityHigh, nil, "https://cb.example.com/x", now).
		WillReturnResult(sqlmock.NewResult(56, 1))
	mock.ExpectExec("INSERT INTO message_recipients").WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := PageRepository{DB: db}.Create(context.Background(), models.Message{
		EnterpriseID:  7,
		ChatID:        sql.NullInt64{Int64: 40, Valid: true},
		SenderType:    models.SenderAPI,
		SenderCaption: "Public API",
		SenderValue:   "7",
		Subject:       "Hi",
		Priority:      models.PriorityHigh,
		CallbackURI:   "https://cb.example.com/x",
		CreatedAt:     now,
	}, []models.MessageRecipient{{RecipientType: models.RecipientOPID, Value: "a", AccountID: sql.NullInt64{Int64: 1, Valid: true}}}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
