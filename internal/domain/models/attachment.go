package models

import (
	"strings"
	"time"
)

// AttachmentFileType is the coarse class stored in nps_attachments.file_type.
type AttachmentFileType int

const (
	AttachmentImage  AttachmentFileType = 0
	AttachmentVideo  AttachmentFileType = 1
	AttachmentAudio  AttachmentFileType = 2
	AttachmentText   AttachmentFileType = 3
	AttachmentMSWord AttachmentFileType = 4
	AttachmentPDF    AttachmentFileType = 5
	AttachmentOther  AttachmentFileType = 99
)

// AttachmentTypeFromMime classifies a MIME type. Parameters ("; charset=utf-8") are ignored.
func AttachmentTypeFromMime(mimeType string) AttachmentFileType {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}

	switch {
	case strings.HasPrefix(mt, "image/"):
		return AttachmentImage
	case strings.HasPrefix(mt, "video/"):
		return AttachmentVideo
	case strings.HasPrefix(mt, "audio/"):
		return AttachmentAudio
	case strings.HasPrefix(mt, "text/"),
		mt == "application/json",
		mt == "application/javascript",
		mt == "application/xml":
		return AttachmentText
	case mt == "application/pdf":
		return AttachmentPDF
	case mt == "application/msword",
		mt == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return AttachmentMSWord
	default:
		return AttachmentOther
	}
}

// Attachment is a row of nps_attachments.
type Attachment struct {
	ID        int64
	FileID    string
	FileName  string
	FileSize  int64
	FileType  AttachmentFileType
	MimeType  string
	Data      []byte
	CreatedAt time.Time
}
