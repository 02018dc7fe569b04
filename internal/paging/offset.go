package paging

import (
	"context"
	"fmt"
)

// OffsetRequest addresses page Offset (zero based) of size Limit.
type OffsetRequest struct {
	Scope  int64
	Search string
	Offset int
	Limit  int
}

// OffsetPage is one page of the offset strategy.
type OffsetPage[D any] struct {
	Items       []D
	HasMoreData bool
}

// PaginateOffset pages over the filtered record stream by position. It skips
// Offset*Limit matches, emits up to Limit and reports whether another match
// follows. Unlike Paginate it is not stable under concurrent inserts.
func PaginateOffset[R Record, D any](ctx context.Context, s Source[R, D], req OffsetRequest) (OffsetPage[D], error) {
	page := OffsetPage[D]{Items: []D{}}
	limit := req.Limit
	if limit < 0 {
		limit = 0
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	skip := offset * limit

	records, err := s.FetchAfter(ctx, req.Scope, 0)
	if err != nil {
		return page, fmt.Errorf("fetch candidates: %w", err)
	}

	seen := 0
	for _, rec := range records {
		if !s.Matches(rec, req.Search) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		if len(page.Items) >= limit {
			page.HasMoreData = true
			break
		}
		item, err := s.ToDTO(ctx, rec)
		if err != nil {
			return page, err
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}
