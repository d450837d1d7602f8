package repositories

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/huyndo/acadmin/internal/app/models/dto"
	"github.com/huyndo/acadmin/internal/pkg/apperrors"
	"github.com/huyndo/acadmin/internal/pkg/cache"
)

// Queryer is the subset of pgxpool.Pool and pgx.Tx the repositories need,
// so the same repository code runs inside and outside transactions.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// psql builds queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// SearchFn narrows a list query for one filter key. Implementations must
// return the builder unchanged for keys they do not recognize.
type SearchFn func(b sq.SelectBuilder, key, value string) sq.SelectBuilder

// LoaderFn hydrates a named relation or aggregate onto a fetched page of
// entities, typically with a single batched IN query.
type LoaderFn[T any] func(ctx context.Context, q Queryer, items []*T) error

// EntityInfo describes one table to the generic repository.
type EntityInfo[T any] struct {
	Table    string
	Singular string
	Columns  []string
	Sortable []string
	Fillable []string
	Scan     func(row pgx.Row) (*T, error)
	Search   SearchFn
	Loaders  map[string]LoaderFn[T]
}

// ListParams are the normalized list-endpoint inputs.
type ListParams struct {
	Filters  map[string]string
	Sort     string
	SortType int
	Limit    *int
	Page     int
}

// reserved query keys that never become filters.
var reservedParams = map[string]bool{
	"page": true, "limit": true,
	"sort": true, "sortField": true,
	"sortType": true, "sortOrder": true,
	"condition": true,
}

// ParseListParams normalizes raw query values into ListParams. When encoded
// is on and a condition blob is present, filters come from its base64 JSON
// payload instead of discrete keys; a malformed blob is a validation error.
// Unparsable page or limit values are ignored.
func ParseListParams(values map[string]string, encoded bool) (ListParams, error) {
	params := ListParams{
		Filters: make(map[string]string),
		Page:    1,
	}

	if raw, ok := values["page"]; ok {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}

	if raw, ok := values["limit"]; ok {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 {
			params.Limit = &limit
		}
	}

	params.Sort = values["sort"]
	if params.Sort == "" {
		params.Sort = values["sortField"]
	}

	rawType := values["sortType"]
	if rawType == "" {
		rawType = values["sortOrder"]
	}
	switch rawType {
	case "1", "asc", "ASC":
		params.SortType = 1
	default:
		params.SortType = 2
	}

	if blob, ok := values["condition"]; encoded && ok {
		decoded, err := base64.StdEncoding.DecodeString(blob)
		if err != nil {
			return params, apperrors.NewValidationError("Condition is not valid base64")
		}
		var raw map[string]interface{}
		if err := json.Unmarshal(decoded, &raw); err != nil {
			return params, apperrors.NewValidationError("Condition is not valid JSON")
		}
		for key, value := range raw {
			params.Filters[key] = fmt.Sprintf("%v", value)
		}
		return params, nil
	}

	for key, value := range values {
		if !reservedParams[key] {
			params.Filters[key] = value
		}
	}

	return params, nil
}

// CacheCompute produces a value for the repository cache registry.
type CacheCompute func(ctx context.Context) (interface{}, error)

// Deps are the shared collaborators every repository is built with.
type Deps struct {
	Q               Queryer
	Cache           cache.Store
	DefaultPageSize int
	TTLFor          func(key string) time.Duration
}

// Base implements list, CRUD and caching generically for one table.
type Base[T any] struct {
	deps         Deps
	info         EntityInfo[T]
	cacheMethods map[string]CacheCompute
}

// NewBase creates a repository over the described table.
func NewBase[T any](deps Deps, info EntityInfo[T]) *Base[T] {
	return &Base[T]{
		deps:         deps,
		info:         info,
		cacheMethods: make(map[string]CacheCompute),
	}
}

// Query exposes the underlying executor to per-entity repository methods.
func (b *Base[T]) Query() Queryer {
	return b.deps.Q
}

// resolveSort returns a sortable column, falling back to the primary key.
func (b *Base[T]) resolveSort(field string) string {
	for _, col := range b.info.Sortable {
		if col == field {
			return col
		}
	}
	return "id"
}

// applyFilters runs the entity search hook over the filter keys in a stable
// order so generated SQL is deterministic.
func (b *Base[T]) applyFilters(builder sq.SelectBuilder, filters map[string]string) sq.SelectBuilder {
	if b.info.Search == nil || len(filters) == 0 {
		return builder
	}
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		builder = b.info.Search(builder, key, filters[key])
	}
	return builder
}

// buildListQuery assembles the filtered, ordered SELECT for List.
func (b *Base[T]) buildListQuery(params ListParams) sq.SelectBuilder {
	builder := psql.Select(b.info.Columns...).From(b.info.Table)
	builder = b.applyFilters(builder, params.Filters)

	direction := "DESC"
	if params.SortType == 1 {
		direction = "ASC"
	}
	return builder.OrderBy(b.resolveSort(params.Sort) + " " + direction)
}

// ListResult is one page of entities with optional pagination metadata.
// Meta is nil when the caller asked for the full set.
type ListResult[T any] struct {
	Items []*T
	Meta  *dto.PageMeta
}

// List fetches entities per the normalized params and hydrates the named
// loaders onto the result page.
func (b *Base[T]) List(ctx context.Context, params ListParams, loaders ...string) (*ListResult[T], error) {
	perPage := b.deps.DefaultPageSize
	if params.Limit != nil {
		perPage = *params.Limit
	}

	builder := b.buildListQuery(params)

	var meta *dto.PageMeta
	if perPage > 0 {
		total, err := b.Count(ctx, params.Filters)
		if err != nil {
			return nil, err
		}

		page := params.Page
		if page < 1 {
			page = 1
		}
		lastPage := int(math.Ceil(float64(total) / float64(perPage)))
		if lastPage < 1 {
			lastPage = 1
		}

		builder = builder.
			Limit(uint64(perPage)).
			Offset(uint64((page - 1) * perPage))

		meta = &dto.PageMeta{
			CurrentPage: page,
			PerPage:     uint64(perPage),
			Total:       total,
			LastPage:    lastPage,
		}
	}

	items, err := b.queryMany(ctx, builder)
	if err != nil {
		return nil, err
	}

	if meta != nil && len(items) > 0 {
		meta.From = int64(meta.CurrentPage-1)*int64(meta.PerPage) + 1
		meta.To = meta.From + int64(len(items)) - 1
	}

	if err := b.runLoaders(ctx, items, loaders); err != nil {
		return nil, err
	}

	return &ListResult[T]{Items: items, Meta: meta}, nil
}

// Count returns the number of rows matching the filters.
func (b *Base[T]) Count(ctx context.Context, filters map[string]string) (int64, error) {
	builder := psql.Select("COUNT(*)").From(b.info.Table)
	builder = b.applyFilters(builder, filters)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s count query: %w", b.info.Singular, err)
	}

	var total int64
	if err := b.deps.Q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", b.info.Singular, err)
	}
	return total, nil
}

// Find fetches one entity by primary key and hydrates the named loaders.
func (b *Base[T]) Find(ctx context.Context, id int64, loaders ...string) (*T, error) {
	builder := psql.Select(b.info.Columns...).
		From(b.info.Table).
		Where(sq.Eq{"id": id}).
		Limit(1)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s find query: %w", b.info.Singular, err)
	}

	entity, err := b.info.Scan(b.deps.Q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", b.info.Singular, err)
	}

	if err := b.runLoaders(ctx, []*T{entity}, loaders); err != nil {
		return nil, err
	}
	return entity, nil
}

// Exists reports whether a row with the given id is present.
func (b *Base[T]) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := psql.Select("1").
		From(b.info.Table).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build %s exists query: %w", b.info.Singular, err)
	}

	var one int
	if err := b.deps.Q.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s existence: %w", b.info.Singular, err)
	}
	return true, nil
}

// Create inserts a new row from the fillable subset of data and returns the
// stored entity. Keys outside the fillable set are dropped silently.
func (b *Base[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	fields := b.pickFillable(data)
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("No writable fields supplied")
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	values := make([]any, 0, len(columns))
	for _, column := range columns {
		values = append(values, fields[column])
	}

	query, args, err := psql.Insert(b.info.Table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING " + joinColumns(b.info.Columns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s insert query: %w", b.info.Singular, err)
	}

	entity, err := b.info.Scan(b.deps.Q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", b.info.Singular, err)
	}
	return entity, nil
}

// Update writes the fillable subset of data to the row with the given id and
// returns the stored entity. An empty update degrades to a fetch.
func (b *Base[T]) Update(ctx context.Context, id int64, data map[string]any) (*T, error) {
	fields := b.pickFillable(data)
	if len(fields) == 0 {
		return b.Find(ctx, id)
	}

	setMap := make(map[string]interface{}, len(fields))
	for column, value := range fields {
		setMap[column] = value
	}

	query, args, err := psql.Update(b.info.Table).
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(b.info.Columns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s update query: %w", b.info.Singular, err)
	}

	entity, err := b.info.Scan(b.deps.Q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", b.info.Singular, err)
	}
	return entity, nil
}

// Delete removes the row with the given id.
func (b *Base[T]) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(b.info.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete query: %w", b.info.Singular, err)
	}

	tag, err := b.deps.Q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", b.info.Singular, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// queryMany runs a select builder and scans every row.
func (b *Base[T]) queryMany(ctx context.Context, builder sq.SelectBuilder) ([]*T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s list query: %w", b.info.Singular, err)
	}

	rows, err := b.deps.Q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rows: %w", b.info.Singular, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		entity, err := b.info.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", b.info.Singular, err)
		}
		items = append(items, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", b.info.Singular, err)
	}
	return items, nil
}

// runLoaders hydrates the named loaders onto a fetched page.
func (b *Base[T]) runLoaders(ctx context.Context, items []*T, names []string) error {
	if len(items) == 0 {
		return nil
	}
	for _, name := range names {
		loader, ok := b.info.Loaders[name]
		if !ok {
			return fmt.Errorf("unknown %s loader %q", b.info.Singular, name)
		}
		if err := loader(ctx, b.deps.Q, items); err != nil {
			return err
		}
	}
	return nil
}

// pickFillable keeps only the mass-assignable keys of data.
func (b *Base[T]) pickFillable(data map[string]any) map[string]any {
	fields := make(map[string]any)
	for _, column := range b.info.Fillable {
		if value, ok := data[column]; ok {
			fields[column] = value
		}
	}
	return fields
}

// RegisterCacheMethod adds a named compute to the repository cache registry.
func (b *Base[T]) RegisterCacheMethod(name string, fn CacheCompute) {
	b.cacheMethods[name] = fn
}

// Cached serves the named registered compute through the cache store,
// unmarshalling into dest. The key is "{singular}_{method}" and the TTL comes
// from per-key configuration.
func (b *Base[T]) Cached(ctx context.Context, method string, dest interface{}) error {
	fn, ok := b.cacheMethods[method]
	if !ok {
		return fmt.Errorf("%w: %s.%s", apperrors.ErrCacheMethodUnknown, b.info.Singular, method)
	}

	key := b.info.Singular + "_" + method
	var ttl time.Duration
	if b.deps.TTLFor != nil {
		ttl = b.deps.TTLFor(key)
	}
	return b.deps.Cache.GetOrSet(ctx, key, ttl, dest, cache.ComputeFn(fn))
}

// InvalidateCache drops the cached value for the named method.
func (b *Base[T]) InvalidateCache(ctx context.Context, method string) error {
	return b.deps.Cache.Delete(ctx, b.info.Singular+"_"+method)
}

// PageLinksFor builds page navigation links for a paginated list response.
func PageLinksFor(path string, meta dto.PageMeta) dto.PageLinks {
	link := func(page int) string {
		return fmt.Sprintf("%s?page=%d&limit=%d", path, page, meta.PerPage)
	}
	links := dto.PageLinks{
		First: link(1),
		Last:  link(meta.LastPage),
	}
	if meta.CurrentPage > 1 {
		links.Prev = link(meta.CurrentPage - 1)
	}
	if meta.CurrentPage < meta.LastPage {
		links.Next = link(meta.CurrentPage + 1)
	}
	return links
}

// ILikeContains is the shared case-insensitive substring match used by the
// entity search hooks.
func ILikeContains(column, value string) sq.Sqlizer {
	return sq.ILike{column: "%" + value + "%"}
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
