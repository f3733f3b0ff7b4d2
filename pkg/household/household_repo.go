package household

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type HouseholdRepo interface {
	// Store stores a new Household to the database
	Store(ctx context.Context, h Household) error
	FindByID(ctx context.Context, id string) (*Household, error)
	UpdateIncome(ctx context.Context, id string, annualIncome int, updatedAt time.Time) (bool, error)
}

type HouseholdRepoImpl struct {
	db *sql.DB
}

func NewHouseholdRepo(db *sql.DB) *HouseholdRepoImpl {
	return &HouseholdRepoImpl{db: db}
}

func (r HouseholdRepoImpl) Store(ctx context.Context, h Household) error {
	query := `INSERT INTO households (id, alias, annual_income, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	var aliasParam interface{}
	if h.Alias != "" {
		aliasParam = h.Alias
	}

	_, err = stmt.ExecContext(ctx,
		h.ID,
		aliasParam,
		h.AnnualIncome,
		h.CreatedAt.UTC().Format(time.RFC3339Nano),
		h.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r HouseholdRepoImpl) FindByID(ctx context.Context, id string) (*Household, error) {
	query := `SELECT id, alias, annual_income, created_at, updated_at
				FROM households WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var h Household
	var alias sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&h.ID, &alias, &h.AnnualIncome, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not scan household: %w", err)
		log.Error(err)
		return nil, err
	}
	if alias.Valid {
		h.Alias = alias.String
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		err := fmt.Errorf("could not parse created_at: %w", err)
		log.Error(err)
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		err := fmt.Errorf("could not parse updated_at: %w", err)
		log.Error(err)
		return nil, err
	}
	h.CreatedAt = created
	h.UpdatedAt = updated
	return &h, nil
}

func (r HouseholdRepoImpl) UpdateIncome(ctx context.Context, id string, annualIncome int, updatedAt time.Time) (bool, error) {
	query := "UPDATE households SET annual_income = ?, updated_at = ? WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, annualIncome, updatedAt.UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
