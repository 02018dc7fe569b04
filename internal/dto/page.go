package dto

import "time"

type PageFrom struct {
	Type    string `json:"type"`
	Caption string `json:"caption"`
	Value   string `json:"value"`
}

type Recipient struct {
	Type    string `json:"type"`
	Caption string `json:"caption"`
	Value   string `json:"value"`
}

type Page struct {
	ID          int64             `json:"id"`
	ChatID      int64             `json:"chatId"`
	From        PageFrom          `json:"from"`
	Subject     string            `json:"subject"`
	Body        string            `json:"body"`
	Priority    string            `json:"priority"`
	Recipients  []Recipient       `json:"recipients"`
	Created     time.Time         `json:"created"`
	Replies     []string          `json:"replies"`
	Attachments []AttachmentShort `json:"attachments"`
	CallbackURI string            `json:"callbackUri"`
}

type Pages struct {
	Pages    []Page         `json:"pages"`
	Metadata OffsetMetadata `json:"metadata"`
}

// PageSend is the body of POST /pages. Recipients are OPIDs of contacts or contact groups.
type PageSend struct {
	ChatID      *int64   `json:"chatId" binding:"omitempty,min=1"`
	Subject     string   `json:"subject" binding:"required"`
	Body        string   `json:"body"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=HIGH LOW"`
	Recipients  []string `json:"recipients" binding:"required,min=1,dive,required"`
	Replies     []string `json:"replies"`
	Attachments []string `json:"attachments" binding:"omitempty,dive,required"`
	CallbackURI string   `json:"callbackUri" binding:"omitempty,url"`
}
