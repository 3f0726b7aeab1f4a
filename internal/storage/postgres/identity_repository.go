package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
)

type identityRepository struct {
	storage *Storage
}

var newIdentityID = uuid.NewString

func (r *identityRepository) Create(ctx context.Context, email, passwordHash string) (*model.Identity, error) {
	const query = `INSERT INTO identities (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at`
	identity := model.Identity{ID: newIdentityID(), Email: email, PasswordHash: passwordHash}
	err := r.storage.pool.QueryRow(ctx, query, identity.ID, email, passwordHash).Scan(&identity.CreatedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return nil, domainErrors.ErrEmailTaken
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	const query = `SELECT id, email, password_hash, created_at FROM identities WHERE email=$1`
	var i model.Identity
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *identityRepository) ListWithoutAccount(ctx context.Context, limit int) ([]model.Identity, error) {
	const query = `SELECT i.id, i.email, i.password_hash, i.created_at
                   FROM identities i
                   LEFT JOIN accounts a ON a.id = i.id
                   WHERE a.id IS NULL
                   ORDER BY i.created_at
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Identity
	for rows.Next() {
		var i model.Identity
		if err := rows.Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
