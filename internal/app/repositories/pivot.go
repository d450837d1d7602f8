package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// syncPivot replaces all rows of a many-to-many pivot table for one owner
// with the given related ids. Duplicate ids collapse to one row.
func syncPivot(ctx context.Context, q Queryer, table, ownerCol string, ownerID int64, relatedCol string, relatedIDs []int64) error {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{ownerCol: ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s clear query: %w", table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s rows: %w", table, err)
	}

	seen := make(map[int64]bool, len(relatedIDs))
	insert := psql.Insert(table).Columns(ownerCol, relatedCol)
	count := 0
	for _, id := range relatedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		insert = insert.Values(ownerID, id)
		count++
	}
	if count == 0 {
		return nil
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s insert query: %w", table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to attach %s rows: %w", table, err)
	}
	return nil
}

// detachPivotByRelated removes every pivot row pointing at one related id,
// regardless of owner. Used when the related record itself is deleted.
func detachPivotByRelated(ctx context.Context, q Queryer, table, relatedCol string, relatedID int64) error {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{relatedCol: relatedID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s detach query: %w", table, err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to detach %s rows: %w", table, err)
	}
	return nil
}
