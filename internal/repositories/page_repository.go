package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "dispatchapi/internal/db"
	"dispatchapi/internal/domain/models"
)

// PageRepository wraps messages with their recipients and attachments.
type PageRepository struct {
	DB *sql.DB
}

func (r PageRepository) db() *sql.DB { return dbOr(r.DB) }

const messageColumns = `
	id, enterprise_id, chat_id, sender_type, COALESCE(sender_caption,''), COALESCE(sender_value,''),
	COALESCE(subject,''), COALESCE(body,''), priority, COALESCE(replies,''), COALESCE(callback_uri,''), created_at`

func scanMessage(row rowScanner) (models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID, &m.EnterpriseID, &m.ChatID, &m.SenderType, &m.SenderCaption, &m.SenderValue,
		&m.Subject, &m.Body, &m.Priority, &m.Replies, &m.CallbackURI, &m.CreatedAt,
	)
	return m, err
}

// FetchSentAfter lists the messages of senderType with id > lastID ordered by id.
func (r PageRepository) FetchSentAfter(ctx context.Context, enterpriseID int64, senderType string, lastID int64) ([]models.Message, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE id > ? AND enterprise_id = ? AND sender_type = ?
		ORDER BY id ASC`, lastID, enterpriseID, senderType)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r PageRepository) Get(ctx context.Context, enterpriseID, id int64) (models.Message, error) {
	return scanMessage(r.db().QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE id = ? AND enterprise_id = ?
		LIMIT 1`, id, enterpriseID))
}

func (r PageRepository) Recipients(ctx context.Context, messageID int64) ([]models.MessageRecipient, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT message_id, recipient_type, COALESCE(caption,''), COALESCE(value,''), account_id, group_id
		FROM message_recipients
		WHERE message_id = ?
		ORDER BY id ASC`, messageID)
	if err != nil {
		return nil, fmt.Errorf("query message recipients: %w", err)
	}
	defer rows.Close()

	out := []models.MessageRecipient{}
	for rows.Next() {
		var rc models.MessageRecipient
		if err := rows.Scan(&rc.MessageID, &rc.RecipientType, &rc.Caption, &rc.Value, &rc.AccountID, &rc.GroupID); err != nil {
			return nil, fmt.Errorf("scan message recipient: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// Attachments lists the files linked to a message without their data.
func (r PageRepository) Attachments(ctx context.Context, messageID int64) ([]models.Attachment, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT a.id, a.file_id, COALESCE(a.file_name,''), a.file_size
		FROM message_attachments ma
		JOIN nps_attachments a ON a.id = ma.attachment_id
		WHERE ma.message_id = ?
		ORDER BY ma.id ASC`, messageID)
	if err != nil {
		return nil, fmt.Errorf("query message attachments: %w", err)
	}
	defer rows.Close()

	out := []models.Attachment{}
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.FileID, &a.FileName, &a.FileSize); err != nil {
			return nil, fmt.Errorf("scan message attachment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create stores the message with its recipients and attachment links in one transaction.
func (r PageRepository) Create(ctx context.Context, m models.Message, recipients []models.MessageRecipient, attachmentIDs []int64) (int64, error) {
	var id int64
	err := withTx(ctx, r.db(), func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO messages (
				enterprise_id, chat_id, sender_type, sender_caption, sender_value,
				subject, body, priority, replies, callback_uri, created_at
			) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			m.EnterpriseID, intdb.NullInt64(m.ChatID), m.SenderType, m.SenderCaption, m.SenderValue,
			m.Subject, m.Body, m.Priority, intdb.NullIfEmpty(m.Replies), intdb.NullIfEmpty(m.CallbackURI), m.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("message id: %w", err)
		}

		for _, rc := range recipients {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO message_recipients (message_id, recipient_type, caption, value, account_id, group_id)
				VALUES (?,?,?,?,?,?)`,
				id, rc.RecipientType, rc.Caption, rc.Value, intdb.NullInt64(rc.AccountID), intdb.NullInt64(rc.GroupID)); err != nil {
				return fmt.Errorf("insert message recipient: %w", err)
			}
		}
		for _, attachmentID := range attachmentIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO message_attachments (message_id, attachment_id) VALUES (?,?)`, id, attachmentID); err != nil {
				return fmt.Errorf("insert message attachment: %w", err)
			}
		}
		return nil
	})
	return id, err
}
