package guest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGuestNotFound = errors.New("guest not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role string) (*Guest, error) {
	query := `
		INSERT INTO guests (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, role, created_at
	`

	var guest Guest
	err := r.db.GetContext(ctx, &guest, query, name, email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Guest, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM guests
		WHERE id = $1
	`

	var guest Guest
	err := r.db.GetContext(ctx, &guest, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Guest, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM guests
		WHERE email = $1
	`

	var guest Guest
	err := r.db.GetContext(ctx, &guest, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Guest, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM guests
		WHERE name = $1
	`

	var guest Guest
	err := r.db.GetContext(ctx, &guest, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *repository) List(ctx context.Context) ([]Guest, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM guests
		ORDER BY created_at DESC
	`

	var guests []Guest
	err := r.db.SelectContext(ctx, &guests, query)
	if err != nil {
		return nil, err
	}

	return guests, nil
}

func (r *repository) UpdateName(ctx context.Context, id int, name string) (*Guest, error) {
	query := `
		UPDATE guests
		SET name = $2
		WHERE id = $1
		RETURNING id, name, email, password_hash, role, created_at
	`

	var guest Guest
	err := r.db.GetContext(ctx, &guest, query, id, name)
	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}

	return &guest, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGuestNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM guests
			WHERE email = $1
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}
