package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/domain/models"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type AttachmentService struct {
	Repo      repositories.AttachmentRepository
	RequestID string
}

// UploadedFile is a file received from a multipart request.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Create stores the file under a fresh UUID. A missing or generic MIME type
// is replaced by one detected from the content.
func (s AttachmentService) Create(ctx context.Context, f UploadedFile) (dto.AttachmentCreated, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return dto.AttachmentCreated{}, domain.ValidationError{Field: "file", Msg: "file name is required"}
	}
	if len(f.Data) == 0 {
		return dto.AttachmentCreated{}, domain.ValidationError{Field: "file", Msg: "file is empty"}
	}

	mimeType := strings.TrimSpace(f.MimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(f.Data).String()
	}

	a := models.Attachment{
		FileID:    uuid.NewString(),
		FileName:  name,
		FileSize:  int64(len(f.Data)),
		FileType:  models.AttachmentTypeFromMime(mimeType),
		MimeType:  mimeType,
		Data:      f.Data,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, a)
	if err != nil {
		return dto.AttachmentCreated{}, err
	}
	utils.LogEvent(s.RequestID, "attachments", "create", fmt.Sprintf("attachment %d stored as %s (%s, %d bytes)", id, a.FileID, mimeType, a.FileSize))
	return dto.AttachmentCreated{ID: a.FileID}, nil
}

// Get returns the attachment with its content base64 encoded.
func (s AttachmentService) Get(ctx context.Context, fileID string) (dto.Attachment, error) {
	a, err := s.Repo.GetByFileID(ctx, strings.TrimSpace(fileID))
	if err != nil {
		return dto.Attachment{}, notFound(err, "attachment", 0)
	}
	return dto.Attachment{
		AttachmentShort: dto.AttachmentShort{ID: a.FileID, Name: a.FileName, Size: a.FileSize},
		Data:            base64.StdEncoding.EncodeToString(a.Data),
	}, nil
}
