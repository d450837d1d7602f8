package repositories

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/cache"
)

func testDeps() Deps {
	return Deps{
		Cache:           cache.NewMemory(),
		DefaultPageSize: 50,
		TTLFor:          func(string) time.Duration { return time.Minute },
	}
}

func TestParseListParamsDefaults(t *testing.T) {
	params, err := ParseListParams(map[string]string{}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, params.Page)
	assert.Nil(t, params.Limit)
	assert.Equal(t, "", params.Sort)
	assert.Equal(t, 2, params.SortType)
	assert.Empty(t, params.Filters)
}

func TestParseListParamsAliases(t *testing.T) {
	params, err := ParseListParams(map[string]string{
		"sortField": "name",
		"sortOrder": "asc",
		"page":      "3",
		"limit":     "10",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "name", params.Sort)
	assert.Equal(t, 1, params.SortType)
	assert.Equal(t, 3, params.Page)
	require.NotNil(t, params.Limit)
	assert.Equal(t, 10, *params.Limit)
}

func TestParseListParamsIgnoresUnparsableNumbers(t *testing.T) {
	params, err := ParseListParams(map[string]string{
		"page":  "abc",
		"limit": "xyz",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, params.Page)
	assert.Nil(t, params.Limit)
}

func TestParseListParamsZeroLimit(t *testing.T) {
	params, err := ParseListParams(map[string]string{"limit": "0"}, false)
	require.NoError(t, err)

	require.NotNil(t, params.Limit)
	assert.Equal(t, 0, *params.Limit)
}

func TestParseListParamsDiscreteFilters(t *testing.T) {
	params, err := ParseListParams(map[string]string{
		"name":  "An",
		"email": "an@example.com",
		"page":  "2",
		"sort":  "name",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":  "An",
		"email": "an@example.com",
	}, params.Filters)
}

func TestParseListParamsEncodedCondition(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(`{"name":"An","parent_id":5}`))

	params, err := ParseListParams(map[string]string{
		"condition": blob,
		"ignored":   "x",
	}, true)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":      "An",
		"parent_id": "5",
	}, params.Filters)
}

func TestParseListParamsMalformedCondition(t *testing.T) {
	_, err := ParseListParams(map[string]string{"condition": "not-base64!!"}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	blob := base64.StdEncoding.EncodeToString([]byte(`{"broken"`))
	_, err = ParseListParams(map[string]string{"condition": blob}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestParseListParamsConditionIgnoredWhenEncodingOff(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(`{"name":"An"}`))

	params, err := ParseListParams(map[string]string{
		"condition": blob,
		"phone":     "555",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"phone": "555"}, params.Filters)
}

func TestBuildListQueryFilterAndOrder(t *testing.T) {
	repo := NewUserRepository(testDeps())

	query, args, err := repo.buildListQuery(ListParams{
		Filters:  map[string]string{"name": "An"},
		Sort:     "email",
		SortType: 1,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, name, email, password, created_at, updated_at FROM users WHERE name ILIKE $1 ORDER BY email ASC",
		query)
	assert.Equal(t, []interface{}{"%An%"}, args)
}

func TestBuildListQueryUnknownFilterFailsOpen(t *testing.T) {
	repo := NewUserRepository(testDeps())

	query, args, err := repo.buildListQuery(ListParams{
		Filters: map[string]string{"bogus": "x"},
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, name, email, password, created_at, updated_at FROM users ORDER BY id DESC",
		query)
	assert.Empty(t, args)
}

func TestBuildListQuerySortFallsBackToPrimaryKey(t *testing.T) {
	repo := NewUserRepository(testDeps())

	query, _, err := repo.buildListQuery(ListParams{Sort: "password", SortType: 1}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY id ASC")
}

func TestBuildListQueryDefaultDirectionIsDescending(t *testing.T) {
	repo := NewUserRepository(testDeps())

	query, _, err := repo.buildListQuery(ListParams{Sort: "name"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY name DESC")
}

func TestMenuSearchByIDs(t *testing.T) {
	repo := NewMenuRepository(testDeps())

	query, args, err := repo.buildListQuery(ListParams{
		Filters:  map[string]string{"ids": "3, 1,2,junk"},
		Sort:     "id",
		SortType: 1,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE id IN ($1,$2,$3)")
	assert.Equal(t, []interface{}{int64(3), int64(1), int64(2)}, args)
}

func TestMenuSearchByParent(t *testing.T) {
	repo := NewMenuRepository(testDeps())

	query, args, err := repo.buildListQuery(ListParams{
		Filters: map[string]string{"parent_id": "7"},
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE parent_id = $1")
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestPickFillableDropsUnknownKeys(t *testing.T) {
	repo := NewUserRepository(testDeps())

	fields := repo.pickFillable(map[string]any{
		"name":     "An",
		"email":    "an@example.com",
		"password": "secret",
		"id":       99,
		"is_admin": true,
	})

	assert.Equal(t, map[string]any{
		"name":     "An",
		"email":    "an@example.com",
		"password": "secret",
	}, fields)
}

func TestCachedMemoizesCompute(t *testing.T) {
	repo := NewBase(testDeps(), EntityInfo[struct{}]{
		Table:    "things",
		Singular: "thing",
	})

	calls := 0
	repo.RegisterCacheMethod("list", func(ctx context.Context) (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	})

	var first, second []string
	require.NoError(t, repo.Cached(context.Background(), "list", &first))
	require.NoError(t, repo.Cached(context.Background(), "list", &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, first, second)
}

func TestCachedUnknownMethod(t *testing.T) {
	repo := NewBase(testDeps(), EntityInfo[struct{}]{
		Table:    "things",
		Singular: "thing",
	})

	var out []string
	err := repo.Cached(context.Background(), "nope", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCacheMethodUnknown))
}

func TestCachedInvalidationRecomputes(t *testing.T) {
	repo := NewBase(testDeps(), EntityInfo[struct{}]{
		Table:    "things",
		Singular: "thing",
	})

	calls := 0
	repo.RegisterCacheMethod("list", func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	})

	var out int
	require.NoError(t, repo.Cached(context.Background(), "list", &out))
	require.NoError(t, repo.InvalidateCache(context.Background(), "list"))
	require.NoError(t, repo.Cached(context.Background(), "list", &out))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, out)
}

func TestPageLinksFor(t *testing.T) {
	links := PageLinksFor("/api/user", dto.PageMeta{
		CurrentPage: 2,
		PerPage:     10,
		Total:       35,
		LastPage:    4,
	})

	assert.Equal(t, "/api/user?page=1&limit=10", links.First)
	assert.Equal(t, "/api/user?page=4&limit=10", links.Last)
	assert.Equal(t, "/api/user?page=1&limit=10", links.Prev)
	assert.Equal(t, "/api/user?page=3&limit=10", links.Next)
}

func TestPageLinksForEdges(t *testing.T) {
	links := PageLinksFor("/api/user", dto.PageMeta{
		CurrentPage: 1,
		PerPage:     10,
		Total:       5,
		LastPage:    1,
	})

	assert.Empty(t, links.Prev)
	assert.Empty(t, links.Next)
}
