package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// OrganizationRepository handles database operations for greek organizations
type OrganizationRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, organization *models.Organization) (int64, error) {
	query := squirrel.Insert("organizations").
		Columns("name", "type", "nickname", "logo_key").
		Values(organization.Name, organization.Type, organization.Nickname, organization.LogoKey).
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

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName retrieves an organization by its exact name
func (r *OrganizationRepository) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *OrganizationRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Organization, error) {
	query := squirrel.Select("id", "name", "type", "nickname", "logo_key", "created_at").
		From("organizations").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var organization models.Organization
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&organization.ID,
		&organization.Name,
		&organization.Type,
		&organization.Nickname,
		&organization.LogoKey,
		&organization.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &organization, nil
}

// GetAll retrieves all organizations ordered by name
func (r *OrganizationRepository) GetAll(ctx context.Context) ([]*models.Organization, error) {
	query := squirrel.Select("id", "name", "type", "nickname", "logo_key", "created_at").
		From("organizations").
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

	var organizations []*models.Organization
	for rows.Next() {
		var organization models.Organization
		err := rows.Scan(
			&organization.ID,
			&organization.Name,
			&organization.Type,
			&organization.Nickname,
			&organization.LogoKey,
			&organization.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		organizations = append(organizations, &organization)
	}

	return organizations, nil
}
