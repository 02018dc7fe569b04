package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/paging"
)

// listPage runs the cursor protocol for one list endpoint.
func listPage[R paging.Record, D any](ctx context.Context, codec *paging.Codec, a paging.Adapter[R, D], enterpriseID int64, q domain.ListQuery) ([]D, dto.Metadata, error) {
	page, err := paging.Paginate(ctx, codec, a, paging.Request{
		Scope:  enterpriseID,
		Search: q.Search,
		Token:  q.NextPageToken,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, dto.Metadata{}, err
	}
	return page.Items, dto.Metadata{NextPageToken: page.NextPageToken}, nil
}

// notFound maps sql.ErrNoRows to a domain.NotFoundError and passes anything else through.
func notFound(err error, resource string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
