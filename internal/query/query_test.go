package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/models"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		want      Page
		expectErr bool
	}{
		{name: "defaults", want: Page{Number: 1, Size: 10}},
		{name: "explicit", page: "3", limit: "25", want: Page{Number: 3, Size: 25}},
		{name: "max limit", page: "1", limit: "100", want: Page{Number: 1, Size: 100}},
		{name: "whitespace", page: " 2 ", limit: " 5", want: Page{Number: 2, Size: 5}},
		{name: "page zero", page: "0", expectErr: true},
		{name: "negative page", page: "-1", expectErr: true},
		{name: "limit zero", limit: "0", expectErr: true},
		{name: "limit too large", limit: "101", expectErr: true},
		{name: "non numeric page", page: "two", expectErr: true},
		{name: "non numeric limit", limit: "10abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePage(tt.page, tt.limit)
			if tt.expectErr {
				require.Error(t, err)
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, models.CodeValidation, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 40, Page{Number: 5, Size: 10}.Offset())
}

func TestParseSort(t *testing.T) {
	allowed := map[string]string{"createdAt": "created_at", "views": "views"}

	s, err := ParseSort("", "", allowed)
	require.NoError(t, err)
	assert.Equal(t, Sort{Column: "created_at", Desc: true}, s)

	s, err = ParseSort("views", "asc", allowed)
	require.NoError(t, err)
	assert.Equal(t, Sort{Column: "views", Desc: false}, s)

	s, err = ParseSort("views", "ASC", allowed)
	require.NoError(t, err)
	assert.False(t, s.Desc)

	s, err = ParseSort("views", "sideways", allowed)
	require.NoError(t, err)
	assert.True(t, s.Desc)

	_, err = ParseSort("password", "asc", allowed)
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusFor(err))
}

func TestNewMeta(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		m := NewMeta(0, Page{Number: 1, Size: 10})
		assert.Equal(t, Meta{CurrentPage: 1, Limit: 10}, m)
		assert.False(t, m.HasNextPage)
		assert.False(t, m.HasPrevPage)
	})

	t.Run("ceil pages", func(t *testing.T) {
		m := NewMeta(21, Page{Number: 1, Size: 10})
		assert.EqualValues(t, 3, m.TotalPages)
		assert.True(t, m.HasNextPage)
		assert.False(t, m.HasPrevPage)
	})

	t.Run("last page", func(t *testing.T) {
		m := NewMeta(20, Page{Number: 2, Size: 10})
		assert.EqualValues(t, 2, m.TotalPages)
		assert.False(t, m.HasNextPage)
		assert.True(t, m.HasPrevPage)
	})

	t.Run("beyond last page", func(t *testing.T) {
		m := NewMeta(5, Page{Number: 4, Size: 10})
		assert.EqualValues(t, 1, m.TotalPages)
		assert.False(t, m.HasNextPage)
		assert.True(t, m.HasPrevPage)
	})
}

func TestPlanBuilder(t *testing.T) {
	p := New("videos").
		Where(Eq{Column: "is_published", Value: true}, Contains{Columns: []string{"title"}, Term: "  "}).
		JoinOn(OwnerJoin("owner_id", "Owner")).
		OrderBy(Sort{Column: "views"}).
		Paginate(Page{Number: 2, Size: 5})

	require.Len(t, p.Filters, 1, "blank search term is dropped")
	assert.Equal(t, "users", p.Join.Table)
	assert.True(t, p.Join.Live)
	assert.Equal(t, "views", p.Sort.Column)
	assert.Equal(t, 5, p.Page.Offset())
}

func TestNewResultNormalizesNil(t *testing.T) {
	r := NewResult[int](nil, 0, Page{Number: 1, Size: 10})
	require.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
}
