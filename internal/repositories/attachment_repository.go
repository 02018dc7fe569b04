package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"dispatchapi/internal/domain/models"
)

// AttachmentRepository wraps nps_attachments.
type AttachmentRepository struct {
	DB *sql.DB
}

func (r AttachmentRepository) db() *sql.DB { return dbOr(r.DB) }

func (r AttachmentRepository) Create(ctx context.Context, a models.Attachment) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO nps_attachments (file_id, file_name, file_size, file_type, mime_type, file_data, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		a.FileID, a.FileName, a.FileSize, int(a.FileType), a.MimeType, a.Data, a.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert attachment: %w", err)
	}
	return res.LastInsertId()
}

func (r AttachmentRepository) GetByFileID(ctx context.Context, fileID string) (models.Attachment, error) {
	var a models.Attachment
	var fileType int
	err := r.db().QueryRowContext(ctx, `
		SELECT id, file_id, COALESCE(file_name,''), file_size, file_type, COALESCE(mime_type,''), file_data, created_at
		FROM nps_attachments
		WHERE file_id = ?
		LIMIT 1`, fileID).Scan(&a.ID, &a.FileID, &a.FileName, &a.FileSize, &fileType, &a.MimeType, &a.Data, &a.CreatedAt)
	a.FileType = models.AttachmentFileType(fileType)
	return a, err
}
