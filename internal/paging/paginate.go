package paging

import (
	"context"
	"fmt"
	"strings"
)

// DefaultLimit is the page size used when the caller sends none.
const DefaultLimit = 10

// Record is a candidate row that can be paged by primary key and searched.
type Record interface {
	RecordID() int64
	SearchFields() []string
}

// Source yields candidate records and turns them into response DTOs.
type Source[R Record, D any] interface {
	// FetchAfter returns records of scope with id > lastID, ascending by id,
	// with the resource's hard state filters applied.
	FetchAfter(ctx context.Context, scope, lastID int64) ([]R, error)
	Matches(record R, search string) bool
	ToDTO(ctx context.Context, record R) (D, error)
}

// Adapter is a Source that owns a cursor key.
type Adapter[R Record, D any] interface {
	Source[R, D]
	CursorKey() string
}

// Request is one page fetch.
type Request struct {
	Scope  int64
	Search string
	Token  string
	Limit  int
}

// Page is one page of DTOs. NextPageToken is nil on the last page.
type Page[D any] struct {
	Items         []D
	NextPageToken *string
}

// Paginate returns the page of matching records following the cursor in
// req.Token. Exactly req.Limit items are emitted when more matches exist,
// and the continuation token is minted on the first match beyond that.
func Paginate[R Record, D any](ctx context.Context, codec *Codec, a Adapter[R, D], req Request) (Page[D], error) {
	page := Page[D]{Items: []D{}}
	limit := req.Limit
	if limit < 0 {
		limit = 0
	}

	key := a.CursorKey()
	cursor := codec.Parse(req.Token)

	records, err := a.FetchAfter(ctx, req.Scope, cursor.GetOr(key, 0))
	if err != nil {
		return page, fmt.Errorf("fetch %s candidates: %w", key, err)
	}

	for _, rec := range records {
		if !a.Matches(rec, req.Search) {
			continue
		}
		if len(page.Items) >= limit {
			token, err := cursor.Token()
			if err != nil {
				return page, err
			}
			page.NextPageToken = &token
			break
		}
		item, err := a.ToDTO(ctx, rec)
		if err != nil {
			return page, err
		}
		page.Items = append(page.Items, item)
		cursor.Set(key, rec.RecordID())
	}
	return page, nil
}

// MatchesSearch reports whether any field contains search, case-insensitively.
// A blank search matches everything.
func MatchesSearch(search string, fields ...string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// MatchesRecord applies MatchesSearch to a record's search fields.
func MatchesRecord(r Record, search string) bool {
	return MatchesSearch(search, r.SearchFields()...)
}
