package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rehlatours/umrahbooking/internal/domain"
)

type PackageRepository interface {
	List(ctx context.Context) ([]domain.Package, error)
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

type PGPackageRepository struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) PackageRepository {
	return &PGPackageRepository{db: db}
}

func (r *PGPackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, price, description, duration, includes, created_at, updated_at
		FROM packages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]domain.Package, 0)
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Duration, &p.Includes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *PGPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, price, description, duration, includes, created_at, updated_at
		FROM packages WHERE id=$1`, id)
	var p domain.Package
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Duration, &p.Includes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ PackageRepository = (*PGPackageRepository)(nil)
