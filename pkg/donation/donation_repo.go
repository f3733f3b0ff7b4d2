package donation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type DonationRepo interface {
	// Store stores a new Donation to the database
	Store(ctx context.Context, d Donation) error
	ListByHousehold(ctx context.Context, householdID string) ([]Donation, error)
	Update(ctx context.Context, d Donation) (bool, error)
	Delete(ctx context.Context, householdID string, donationID string) (bool, error)
}

type DonationRepoImpl struct {
	db *sql.DB
}

func NewDonationRepo(db *sql.DB) *DonationRepoImpl {
	return &DonationRepoImpl{db: db}
}

func (r DonationRepoImpl) Store(ctx context.Context, d Donation) error {
	query := `INSERT INTO donations (
                    id,
                    household_id,
                    charity_name,
                    amount,
                    frequency,
                    annual_amount,
                    created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		d.ID,
		d.HouseholdID,
		d.CharityName,
		d.Amount,
		string(d.Frequency),
		d.AnnualAmount,
		d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r DonationRepoImpl) ListByHousehold(ctx context.Context, householdID string) ([]Donation, error) {
	query := `SELECT id, household_id, charity_name, amount, frequency, annual_amount, created_at
				FROM donations WHERE household_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, householdID)
	if err != nil {
		err := fmt.Errorf("could not query donations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	donations := make([]Donation, 0)
	for rows.Next() {
		var d Donation
		var frequency string
		var createdAt string
		if err := rows.Scan(
			&d.ID,
			&d.HouseholdID,
			&d.CharityName,
			&d.Amount,
			&frequency,
			&d.AnnualAmount,
			&createdAt,
		); err != nil {
			err := fmt.Errorf("could not scan donation: %w", err)
			log.Error(err)
			return nil, err
		}
		d.Frequency = Frequency(frequency)
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			err := fmt.Errorf("could not parse created_at: %w", err)
			log.Error(err)
			return nil, err
		}
		d.CreatedAt = ts
		donations = append(donations, d)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return donations, nil
}

func (r DonationRepoImpl) Update(ctx context.Context, d Donation) (bool, error) {
	query := `UPDATE donations SET
                  charity_name = ?,
                  amount = ?,
                  frequency = ?,
                  annual_amount = ?
              WHERE id = ? and household_id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		d.CharityName,
		d.Amount,
		string(d.Frequency),
		d.AnnualAmount,
		d.ID,
		d.HouseholdID,
	)
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

func (r DonationRepoImpl) Delete(ctx context.Context, householdID string, donationID string) (bool, error) {
	query := "DELETE FROM donations WHERE id = ? and household_id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, donationID, householdID)
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
