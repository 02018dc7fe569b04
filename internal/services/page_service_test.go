package services

import (
	"context"
	"testing"
	"time"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/domain/models"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageCols = []string{
	"id", "enterprise_id", "chat_id", "sender_type", "sender_caption", "sender_value",
	"subject", "body", "priority", "replies", "callback_uri", "created_at",
}

var recipientCols = []string{"message_id", "recipient_type", "caption", "value", "account_id", "group_id"}

func newPageService(t *testing.T) (PageService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMock(t)
	return PageService{
		Repo:           repositories.PageRepository{DB: db},
		ContactRepo:    repositories.ContactRepository{DB: db},
		GroupRepo:      repositories.ContactGroupRepository{DB: db},
		AttachmentRepo: repositories.AttachmentRepository{DB: db},
	}, mock
}

const (
	accountByMask = "FROM accounts a\\s+WHERE a.alternative_pager_number = \\?"
	groupByMask   = "FROM `groups`\\s+WHERE alternative_pager_number = \\?"
)

func TestPageSendResolvesContactsAndGroups(t *testing.T) {
	svc, mock := newPageService(t)

	mock.ExpectQuery(accountByMask).WithArgs("nurse42", int64(7)).WillReturnRows(sqlmock.NewRows(accountStatusCols).
		AddRow(3, 7, "Nurse-42", "nurse42", "Ann", "Lee", "a@x.io", "+1", true, false, time.Unix(0, 0), true, true))
	mock.ExpectQuery(accountByMask).WithArgs("icu", int64(7)).WillReturnRows(sqlmock.NewRows(accountStatusCols))
	mock.ExpectQuery(groupByMask).WithArgs("icu", int64(7)).WillReturnRows(sqlmock.NewRows(groupCols).
		AddRow(9, 7, "Intensive care", nil, "ICU", "icu", false, nil, nil, "", "", "", false, time.Unix(0, 0)))
	mock.ExpectQuery("FROM nps_attachments").WithArgs("f-1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "file_id", "file_name", "file_size", "file_type", "mime_type", "file_data", "created_at"}).
			AddRow(21, "f-1", "map.png", 120, 0, "image/png", []byte("x"), time.Unix(0, 0)))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(int64(7), nil, models.SenderAPI, "Public API", "7", "Fire drill", "Stairs B", models.PriorityLow, "Yes;No", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("INSERT INTO message_recipients").
		WithArgs(int64(55), models.RecipientOPID, "Ann Lee", "Nurse-42", int64(3), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO message_recipients").
		WithArgs(int64(55), models.RecipientGroup, "Intensive care", "ICU", nil, int64(9)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO message_attachments").WithArgs(int64(55), int64(21)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("FROM message_recipients").WithArgs(int64(55)).WillReturnRows(sqlmock.NewRows(recipientCols).
		AddRow(55, models.RecipientOPID, "Ann Lee", "Nurse-42", 3, nil).
		AddRow(55, models.RecipientGroup, "Intensive care", "ICU", nil, 9))
	mock.ExpectQuery("FROM message_attachments ma").WithArgs(int64(55)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "file_id", "file_name", "file_size"}).AddRow(21, "f-1", "map.png", 120))

	got, err := svc.Send(context.Background(), 7, dto.PageSend{
		Subject:     " Fire drill ",
		Body:        "Stairs B",
		Priority:    "LOW",
		Recipients:  []string{"Nurse-42", "ICU", "nurse 42"},
		Replies:     []string{"Yes", "", "No"},
		Attachments: []string{"f-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), got.ID)
	assert.Equal(t, int64(55), got.ChatID)
	assert.Equal(t, "LOW", got.Priority)
	assert.Equal(t, dto.PageFrom{Type: "API", Caption: "Public API", Value: "7"}, got.From)
	assert.Equal(t, []dto.Recipient{
		{Type: "opid", Caption: "Ann Lee", Value: "Nurse-42"},
		{Type: "group", Caption: "Intensive care", Value: "ICU"},
	}, got.Recipients)
	assert.Equal(t, []string{"Yes", "No"}, got.Replies)
	assert.Equal(t, []dto.AttachmentShort{{ID: "f-1", Name: "map.png", Size: 120}}, got.Attachments)
	assert.False(t, got.Created.IsZero())
	expectationsMet(t, mock)
}

func TestPageSendRejectsUnknownRecipient(t *testing.T) {
	svc, mock := newPageService(t)
	mock.ExpectQuery(accountByMask).WithArgs("ghost", int64(7)).WillReturnRows(sqlmock.NewRows(accountStatusCols))
	mock.ExpectQuery(groupByMask).WithArgs("ghost", int64(7)).WillReturnRows(sqlmock.NewRows(groupCols))

	_, err := svc.Send(context.Background(), 7, dto.PageSend{Subject: "Hi", Recipients: []string{"ghost"}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	assert.Contains(t, err.Error(), "ghost")
	expectationsMet(t, mock)
}

func TestPageSendRejectsMissingAttachment(t *testing.T) {
	svc, mock := newPageService(t)
	mock.ExpectQuery(accountByMask).WithArgs("nurse42", int64(7)).WillReturnRows(sqlmock.NewRows(accountStatusCols).
		AddRow(3, 7, "Nurse-42", "nurse42", "Ann", "Lee", "a@x.io", "+1", true, false, time.Unix(0, 0), true, true))
	mock.ExpectQuery("FROM nps_attachments").WithArgs("nope").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Send(context.Background(), 7, dto.PageSend{Subject: "Hi", Recipients: []string{"Nurse-42"}, Attachments: []string{"nope"}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestPageSendRejectsBlankSubjectBeforeLookups(t *testing.T) {
	svc, mock := newPageService(t)

	_, err := svc.Send(context.Background(), 7, dto.PageSend{Subject: "   ", Recipients: []string{"Nurse-42"}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestPageSendRejectsForeignChat(t *testing.T) {
	svc, mock := newPageService(t)
	mock.ExpectQuery(accountByMask).WithArgs("nurse42", int64(7)).WillReturnRows(sqlmock.NewRows(accountStatusCols).
		AddRow(3, 7, "Nurse-42", "nurse42", "Ann", "Lee", "a@x.io", "+1", true, false, time.Unix(0, 0), true, true))
	mock.ExpectQuery("FROM messages\\s+WHERE id = \\?").WithArgs(int64(40), int64(7)).WillReturnRows(sqlmock.NewRows(messageCols))

	chat := int64(40)
	_, err := svc.Send(context.Background(), 7, dto.PageSend{Subject: "Re", Recipients: []string{"Nurse-42"}, ChatID: &chat})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestPageListOffsetAndSearch(t *testing.T) {
	svc, mock := newPageService(t)
	rows := sqlmock.NewRows(messageCols)
	for i := int64(1); i <= 5; i++ {
		subject := "routine"
		if i%2 == 1 {
			subject = "Code blue"
		}
		rows.AddRow(i, 7, nil, "API", "Public API", "7", subject, "", 2, "", "", time.Unix(0, 0))
	}
	mock.ExpectQuery("FROM messages\\s+WHERE id > \\?").WithArgs(int64(0), int64(7), models.SenderAPI).WillReturnRows(rows)
	mock.ExpectQuery("FROM message_recipients").WithArgs(int64(3)).WillReturnRows(sqlmock.NewRows(recipientCols))
	mock.ExpectQuery("FROM message_attachments ma").WithArgs(int64(3)).WillReturnRows(sqlmock.NewRows([]string{"id", "file_id", "file_name", "file_size"}))

	got, err := svc.List(context.Background(), 7, domain.OffsetQuery{Search: "BLUE", Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got.Pages, 1)
	assert.Equal(t, int64(3), got.Pages[0].ID)
	assert.Equal(t, "HIGH", got.Pages[0].Priority)
	assert.Equal(t, []dto.Recipient{}, got.Pages[0].Recipients)
	assert.True(t, got.Metadata.HasMoreData)
	expectationsMet(t, mock)
}
