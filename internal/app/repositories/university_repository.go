package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// UniversityRepository handles database operations for universities
type UniversityRepository struct {
	db *pgxpool.Pool
}

// NewUniversityRepository creates a new UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{db: db}
}

// Create creates a new university
func (r *UniversityRepository) Create(ctx context.Context, university *models.University) (int64, error) {
	query := squirrel.Insert("universities").
		Columns("name").
		Values(university.Name).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a university by ID
func (r *UniversityRepository) GetByID(ctx context.Context, id int64) (*models.University, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName retrieves a university by its exact name
func (r *UniversityRepository) GetByName(ctx context.Context, name string) (*models.University, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *UniversityRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.University, error) {
	query := squirrel.Select("id", "name", "created_at").
		From("universities").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var university models.University
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&university.ID,
		&university.Name,
		&university.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &university, nil
}

// GetAll retrieves all universities ordered by name
func (r *UniversityRepository) GetAll(ctx context.Context) ([]*models.University, error) {
	query := squirrel.Select("id", "name", "created_at").
		From("universities").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var universities []*models.University
	for rows.Next() {
		var university models.University
		if err := rows.Scan(&university.ID, &university.Name, &university.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		universities = append(universities, &university)
	}

	return universities, nil
}
