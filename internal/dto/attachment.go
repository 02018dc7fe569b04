package dto

type AttachmentCreated struct {
	ID string `json:"id"`
}

type AttachmentShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Attachment carries the file content base64 encoded.
type Attachment struct {
	AttachmentShort
	Data string `json:"data"`
}
