package repositories

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
)

// ThesisRepository manages the theses table.
type ThesisRepository struct {
	*Base[models.Thesis]
}

func scanThesis(row pgx.Row) (*models.Thesis, error) {
	var t models.Thesis
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Attaches, &t.StudentID, &t.LecturerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// NewThesisRepository creates a ThesisRepository.
func NewThesisRepository(deps Deps) *ThesisRepository {
	return &ThesisRepository{
		Base: NewBase(deps, EntityInfo[models.Thesis]{
			Table:    "theses",
			Singular: "thesis",
			Columns:  []string{"id", "name", "description", "attaches", "student_id", "lecturer_id", "created_at", "updated_at"},
			Sortable: []string{"id", "name", "student_id", "lecturer_id", "created_at"},
			Fillable: []string{"name", "description", "attaches", "student_id", "lecturer_id"},
			Scan:     scanThesis,
			Search: func(b sq.SelectBuilder, key, value string) sq.SelectBuilder {
				switch key {
				case "name":
					return b.Where(ILikeContains("name", value))
				case "student_id", "lecturer_id":
					if id, err := strconv.ParseInt(value, 10, 64); err == nil {
						return b.Where(sq.Eq{key: id})
					}
				}
				return b
			},
			Loaders: map[string]LoaderFn[models.Thesis]{
				"student":  loadThesisStudents,
				"lecturer": loadThesisLecturers,
			},
		}),
	}
}

func loadThesisStudents(ctx context.Context, q Queryer, theses []*models.Thesis) error {
	ids := make([]int64, 0, len(theses))
	for _, thesis := range theses {
		ids = append(ids, thesis.StudentID)
	}

	query, args, err := psql.
		Select("id", "name", "address", "phone", "specialized", "created_at", "updated_at").
		From("students").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build thesis students query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load thesis students: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.Student)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return fmt.Errorf("failed to scan thesis student row: %w", err)
		}
		byID[student.ID] = student
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, thesis := range theses {
		thesis.Student = byID[thesis.StudentID]
	}
	return nil
}

func loadThesisLecturers(ctx context.Context, q Queryer, theses []*models.Thesis) error {
	ids := make([]int64, 0, len(theses))
	for _, thesis := range theses {
		ids = append(ids, thesis.LecturerID)
	}

	query, args, err := psql.
		Select("id", "name", "address", "phone", "specialized", "created_at", "updated_at").
		From("lecturers").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build thesis lecturers query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load thesis lecturers: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.Lecturer)
	for rows.Next() {
		lecturer, err := scanLecturer(rows)
		if err != nil {
			return fmt.Errorf("failed to scan thesis lecturer row: %w", err)
		}
		byID[lecturer.ID] = lecturer
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, thesis := range theses {
		thesis.Lecturer = byID[thesis.LecturerID]
	}
	return nil
}
