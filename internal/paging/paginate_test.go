package paging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    int64
	scope int64
	name  string
}

func (r row) RecordID() int64         { return r.id }
func (r row) SearchFields() []string { return []string{r.name} }

type memAdapter struct {
	rows     []row
	fetchErr error
	afters   []int64
}

func (m *memAdapter) CursorKey() string { return KeyContact }

func (m *memAdapter) FetchAfter(_ context.Context, scope, lastID int64) ([]row, error) {
	m.afters = append(m.afters, lastID)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := []row{}
	for _, r := range m.rows {
		if r.scope == scope && r.id > lastID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAdapter) Matches(r row, search string) bool { return MatchesRecord(r, search) }

func (m *memAdapter) ToDTO(_ context.Context, r row) (int64, error) { return r.id, nil }

func rowsFor(ids ...int64) []row {
	out := make([]row, 0, len(ids))
	for _, id := range ids {
		out = append(out, row{id: id, scope: 1, name: fmt.Sprintf("contact-%d", id)})
	}
	return out
}

func idRange(from, to int64) []int64 {
	out := []int64{}
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestPaginateTwentyFiveRecordsInPagesOfTen(t *testing.T) {
	codec := NewCodec("test-secret")
	a := &memAdapter{rows: rowsFor(idRange(1, 25)...)}
	ctx := context.Background()

	first, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, idRange(1, 10), first.Items)
	require.NotNil(t, first.NextPageToken)

	second, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Limit: 10, Token: *first.NextPageToken})
	require.NoError(t, err)
	assert.Equal(t, idRange(11, 20), second.Items)
	require.NotNil(t, second.NextPageToken)

	third, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Limit: 10, Token: *second.NextPageToken})
	require.NoError(t, err)
	assert.Equal(t, idRange(21, 25), third.Items)
	assert.Nil(t, third.NextPageToken)

	assert.Equal(t, []int64{0, 10, 20}, a.afters)
}

func TestPaginateShortSourceEndsOnFirstPage(t *testing.T) {
	a := &memAdapter{rows: rowsFor(idRange(1, 5)...)}

	page, err := Paginate[row, int64](context.Background(), NewCodec("s"), a, Request{Scope: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, idRange(1, 5), page.Items)
	assert.Nil(t, page.NextPageToken)
}

func TestPaginateEmptySource(t *testing.T) {
	page, err := Paginate[row, int64](context.Background(), NewCodec("s"), &memAdapter{}, Request{Scope: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{}, page.Items)
	assert.Nil(t, page.NextPageToken)
}

func TestPaginateExactlyLimitRecordsHasNoToken(t *testing.T) {
	a := &memAdapter{rows: rowsFor(idRange(1, 10)...)}

	page, err := Paginate[row, int64](context.Background(), NewCodec("s"), a, Request{Scope: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Nil(t, page.NextPageToken)
}

func TestPaginateLimitPlusOneHasToken(t *testing.T) {
	a := &memAdapter{rows: rowsFor(idRange(1, 11)...)}

	page, err := Paginate[row, int64](context.Background(), NewCodec("s"), a, Request{Scope: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.NotNil(t, page.NextPageToken)
}

func TestPaginateVisitsEveryRecordOnce(t *testing.T) {
	codec := NewCodec("test-secret")
	ids := []int64{2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233}
	for _, limit := range []int{1, 2, 3, 4, 7, 11, 12} {
		a := &memAdapter{rows: rowsFor(ids...)}
		var got []int64
		token := ""
		for guard := 0; guard < 50; guard++ {
			page, err := Paginate[row, int64](context.Background(), codec, a, Request{Scope: 1, Limit: limit, Token: token})
			require.NoError(t, err)
			got = append(got, page.Items...)
			if page.NextPageToken == nil {
				break
			}
			assert.Len(t, page.Items, limit)
			token = *page.NextPageToken
		}
		assert.Equal(t, ids, got, "limit %d", limit)
	}
}

func TestPaginateSearchPagesOverFilteredSubset(t *testing.T) {
	codec := NewCodec("test-secret")
	rows := []row{}
	for i := int64(1); i <= 30; i++ {
		name := "bob"
		if i%3 == 0 {
			name = "Alice"
		}
		rows = append(rows, row{id: i, scope: 1, name: name})
	}
	a := &memAdapter{rows: rows}
	ctx := context.Background()

	first, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Search: "ALI", Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 6, 9, 12}, first.Items)
	require.NotNil(t, first.NextPageToken)
	assert.Equal(t, map[string]int64{KeyContact: 12}, codec.Decode(*first.NextPageToken))

	second, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Search: "ALI", Limit: 4, Token: *first.NextPageToken})
	require.NoError(t, err)
	assert.Equal(t, []int64{15, 18, 21, 24}, second.Items)
	require.NotNil(t, second.NextPageToken)

	third, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Search: "ALI", Limit: 4, Token: *second.NextPageToken})
	require.NoError(t, err)
	assert.Equal(t, []int64{27, 30}, third.Items)
	assert.Nil(t, third.NextPageToken)
}

func TestPaginateRespectsScope(t *testing.T) {
	a := &memAdapter{rows: []row{{id: 1, scope: 1}, {id: 2, scope: 2}, {id: 3, scope: 1}}}

	page, err := Paginate[row, int64](context.Background(), NewCodec("s"), a, Request{Scope: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, page.Items)
}

func TestPaginateZeroLimit(t *testing.T) {
	codec := NewCodec("test-secret")
	a := &memAdapter{rows: rowsFor(idRange(1, 3)...)}

	page, err := Paginate[row, int64](context.Background(), codec, a, Request{Scope: 1, Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	require.NotNil(t, page.NextPageToken)
	assert.Equal(t, int64(0), codec.Parse(*page.NextPageToken).GetOr(KeyContact, 0))

	empty, err := Paginate[row, int64](context.Background(), codec, &memAdapter{}, Request{Scope: 1, Limit: 0})
	require.NoError(t, err)
	assert.Nil(t, empty.NextPageToken)
}

func TestPaginateInvalidTokenRestarts(t *testing.T) {
	a := &memAdapter{rows: rowsFor(idRange(1, 3)...)}

	page, err := Paginate[row, int64](context.Background(), NewCodec("s"), a, Request{Scope: 1, Limit: 10, Token: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, idRange(1, 3), page.Items)
	assert.Equal(t, []int64{0}, a.afters)
}

func TestPaginateForeignKeyTokenRestarts(t *testing.T) {
	codec := NewCodec("test-secret")
	foreign, err := codec.Encode(map[string]int64{KeyTemplate: 2})
	require.NoError(t, err)
	a := &memAdapter{rows: rowsFor(idRange(1, 3)...)}

	page, err := Paginate[row, int64](context.Background(), codec, a, Request{Scope: 1, Limit: 10, Token: foreign})
	require.NoError(t, err)
	assert.Equal(t, idRange(1, 3), page.Items)
}

func TestPaginateDeletedRecordBelowCursor(t *testing.T) {
	codec := NewCodec("test-secret")
	a := &memAdapter{rows: rowsFor(idRange(1, 6)...)}
	ctx := context.Background()

	first, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Limit: 3})
	require.NoError(t, err)
	require.NotNil(t, first.NextPageToken)

	a.rows = rowsFor(1, 3, 4, 5, 6)
	second, err := Paginate[row, int64](ctx, codec, a, Request{Scope: 1, Limit: 3, Token: *first.NextPageToken})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5, 6}, second.Items)
}

func TestPaginatePropagatesFetchError(t *testing.T) {
	boom := errors.New("database unavailable")
	a := &memAdapter{fetchErr: boom}

	_, err := Paginate[row, int64](context.Background(), NewCodec("s"), a, Request{Scope: 1, Limit: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, MatchesSearch("", "x"))
	assert.True(t, MatchesSearch("   "))
	assert.True(t, MatchesSearch("SMI", "john", "Smith"))
	assert.False(t, MatchesSearch("zz", "john", "Smith"))
	assert.False(t, MatchesSearch("a"))
}
