package dto

// Metadata accompanies every cursor paged list response.
type Metadata struct {
	NextPageToken *string `json:"nextPageToken"`
}

// OffsetMetadata accompanies offset paged responses.
type OffsetMetadata struct {
	HasMoreData bool `json:"hasMoreData"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

// PatchOperation documents one RFC 6902 operation. Patches are applied from the raw body.
type PatchOperation struct {
	Op    string `json:"op" binding:"required,oneof=add remove replace move copy test"`
	Path  string `json:"path" binding:"required"`
	Value any    `json:"value,omitempty"`
	From  string `json:"from,omitempty"`
}
