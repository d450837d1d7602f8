package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
)

// StudentRepository manages the students table.
type StudentRepository struct {
	*Base[models.Student]
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Specialized, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func personSearch(b sq.SelectBuilder, key, value string) sq.SelectBuilder {
	switch key {
	case "name":
		return b.Where(ILikeContains("name", value))
	case "address":
		return b.Where(ILikeContains("address", value))
	case "phone":
		return b.Where(ILikeContains("phone", value))
	}
	return b
}

// NewStudentRepository creates a StudentRepository.
func NewStudentRepository(deps Deps) *StudentRepository {
	return &StudentRepository{
		Base: NewBase(deps, EntityInfo[models.Student]{
			Table:    "students",
			Singular: "student",
			Columns:  []string{"id", "name", "address", "phone", "specialized", "created_at", "updated_at"},
			Sortable: []string{"id", "name", "created_at"},
			Fillable: []string{"name", "address", "phone", "specialized"},
			Scan:     scanStudent,
			Search:   personSearch,
			Loaders: map[string]LoaderFn[models.Student]{
				"theses_count": loadStudentThesisCounts,
			},
		}),
	}
}

func loadStudentThesisCounts(ctx context.Context, q Queryer, students []*models.Student) error {
	ids := make([]int64, 0, len(students))
	for _, student := range students {
		ids = append(ids, student.ID)
	}

	counts, err := thesisCountsBy(ctx, q, "student_id", ids)
	if err != nil {
		return err
	}
	for _, student := range students {
		student.ThesisCount = counts[student.ID]
	}
	return nil
}

// thesisCountsBy counts theses grouped by the given owner column.
func thesisCountsBy(ctx context.Context, q Queryer, ownerCol string, ids []int64) (map[int64]int64, error) {
	result := make(map[int64]int64)
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := psql.
		Select(ownerCol, "COUNT(*)").
		From("theses").
		Where(sq.Eq{ownerCol: ids}).
		GroupBy(ownerCol).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build thesis count query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count theses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID, count int64
		if err := rows.Scan(&ownerID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan thesis count row: %w", err)
		}
		result[ownerID] = count
	}
	return result, rows.Err()
}
