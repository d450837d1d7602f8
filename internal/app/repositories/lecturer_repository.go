package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/huyndo/acadmin/internal/app/models"
)

// LecturerRepository manages the lecturers table.
type LecturerRepository struct {
	*Base[models.Lecturer]
}

func scanLecturer(row pgx.Row) (*models.Lecturer, error) {
	var l models.Lecturer
	if err := row.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.Specialized, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// NewLecturerRepository creates a LecturerRepository.
func NewLecturerRepository(deps Deps) *LecturerRepository {
	return &LecturerRepository{
		Base: NewBase(deps, EntityInfo[models.Lecturer]{
			Table:    "lecturers",
			Singular: "lecturer",
			Columns:  []string{"id", "name", "address", "phone", "specialized", "created_at", "updated_at"},
			Sortable: []string{"id", "name", "created_at"},
			Fillable: []string{"name", "address", "phone", "specialized"},
			Scan:     scanLecturer,
			Search:   personSearch,
			Loaders: map[string]LoaderFn[models.Lecturer]{
				"theses_count": loadLecturerThesisCounts,
			},
		}),
	}
}

func loadLecturerThesisCounts(ctx context.Context, q Queryer, lecturers []*models.Lecturer) error {
	ids := make([]int64, 0, len(lecturers))
	for _, lecturer := range lecturers {
		ids = append(ids, lecturer.ID)
	}

	counts, err := thesisCountsBy(ctx, q, "lecturer_id", ids)
	if err != nil {
		return err
	}
	for _, lecturer := range lecturers {
		lecturer.ThesisCount = counts[lecturer.ID]
	}
	return nil
}
