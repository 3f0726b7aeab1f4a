package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
)

type ledgerRepository struct {
	storage *Storage
}

// ApplyDonation increments totals relative to the stored row, so concurrent donations serialize
// on the row lock instead of failing a version check.
func (r *ledgerRepository) ApplyDonation(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (*model.Account, error) {
	const updateQuery = `UPDATE accounts
                         SET total_raised = total_raised + $2::numeric,
                             donation_count = donation_count + 1,
                             version = version + 1
                         WHERE id=$1
                         RETURNING ` + accountColumns
	const insertEvent = `INSERT INTO donation_events (account_id, amount, occurred_at) VALUES ($1, $2::numeric, $3)`

	var updated *model.Account
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		account, err := scanAccount(tx.QueryRow(ctx, updateQuery, accountID, amount.String()))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrAccountNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, insertEvent, accountID, amount.String(), at); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if transientConflict(err) {
		r.storage.logger.Debug("ledger transaction aborted by concurrent writer",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
		return nil, domainErrors.ErrConcurrentUpdateConflict
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ledgerRepository) History(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error) {
	const query = `SELECT id, account_id, amount::text, occurred_at
                   FROM donation_events WHERE account_id=$1
                   ORDER BY occurred_at DESC, id DESC
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DonationEvent
	for rows.Next() {
		var (
			e      model.DonationEvent
			amount string
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &amount, &e.OccurredAt); err != nil {
			return nil, err
		}
		if e.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ledgerRepository) SumInWindow(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0)::text FROM donation_events
                   WHERE account_id=$1 AND occurred_at >= $2 AND occurred_at < $3`
	var raw string
	if err := r.storage.pool.QueryRow(ctx, query, accountID, from, to).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	return parseDecimal(raw)
}

func (r *ledgerRepository) Standings(ctx context.Context, previousFrom, currentFrom, now time.Time) ([]model.Standing, error) {
	const query = `SELECT a.id, a.email, a.display_name, a.referral_code, a.total_raised::text, a.donation_count,
                          a.join_date, a.avatar_ref, a.version,
                          COALESCE(SUM(e.amount) FILTER (WHERE e.occurred_at >= $2 AND e.occurred_at < $3), 0)::text,
                          COALESCE(SUM(e.amount) FILTER (WHERE e.occurred_at < $2), 0)::text
                   FROM accounts a
                   LEFT JOIN donation_events e ON e.account_id = a.id AND e.occurred_at >= $1 AND e.occurred_at < $3
                   GROUP BY a.id
                   ORDER BY a.total_raised DESC, a.join_date ASC, a.id ASC`
	rows, err := r.storage.pool.Query(ctx, query, previousFrom, currentFrom, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Standing
	for rows.Next() {
		var (
			s                      model.Standing
			total, current, before string
		)
		a := &s.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.DisplayName, &a.ReferralCode, &total, &a.DonationCount,
			&a.JoinDate, &a.AvatarRef, &a.Version, &current, &before); err != nil {
			return nil, err
		}
		if a.TotalRaised, err = parseDecimal(total); err != nil {
			return nil, err
		}
		if s.CurrentWindow, err = parseDecimal(current); err != nil {
			return nil, err
		}
		if s.PreviousWindow, err = parseDecimal(before); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
