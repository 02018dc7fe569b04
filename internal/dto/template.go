package dto

type Template struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Subject           string   `json:"subject"`
	Body              string   `json:"body"`
	PredefinedReplies []string `json:"predefinedReplies"`
	SyncToDevice      bool     `json:"syncToDevice"`
}

type Templates struct {
	Templates []Template `json:"templates"`
	Metadata  Metadata   `json:"metadata"`
}

type TemplateCreate struct {
	Name              string   `json:"name" binding:"required"`
	Subject           string   `json:"subject" binding:"required"`
	Body              string   `json:"body"`
	PredefinedReplies []string `json:"predefinedReplies"`
	SyncToDevice      bool     `json:"syncToDevice"`
}

type TemplateUpdate struct {
	Name              *string  `json:"name" binding:"omitempty,min=1"`
	Subject           *string  `json:"subject" binding:"omitempty,min=1"`
	Body              *string  `json:"body"`
	PredefinedReplies []string `json:"predefinedReplies"`
	SyncToDevice      *bool    `json:"syncToDevice"`
}
