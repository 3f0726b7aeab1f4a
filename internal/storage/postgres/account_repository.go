package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
)

const accountColumns = `id, email, display_name, referral_code, total_raised::text, donation_count, join_date, avatar_ref, version`

const (
	emailConstraint    = "accounts_email_key"
	referralConstraint = "accounts_referral_code_key"
)

type accountRepository struct {
	storage *Storage
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		a     model.Account
		total string
	)
	if err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.ReferralCode, &total, &a.DonationCount, &a.JoinDate, &a.AvatarRef, &a.Version); err != nil {
		return nil, err
	}
	amount, err := parseDecimal(total)
	if err != nil {
		return nil, err
	}
	a.TotalRaised = amount
	return &a, nil
}

func (r *accountRepository) getOne(ctx context.Context, query string, args ...any) (*model.Account, error) {
	account, err := scanAccount(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
}

func (r *accountRepository) GetByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE referral_code=$1`, code)
}

func (r *accountRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE referral_code=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *accountRepository) InsertIfAbsent(ctx context.Context, account model.Account) (*model.Account, bool, error) {
	const query = `INSERT INTO accounts (id, email, display_name, referral_code, total_raised, donation_count, join_date, avatar_ref, version)
                   VALUES ($1, $2, $3, $4, 0, 0, $5, $6, 0)
                   ON CONFLICT (id) DO NOTHING
                   RETURNING ` + accountColumns
	created, err := scanAccount(r.storage.pool.QueryRow(ctx, query,
		account.ID, account.Email, account.DisplayName, account.ReferralCode, account.JoinDate, account.AvatarRef))
	if err == nil {
		return created, true, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := r.GetByID(ctx, account.ID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	if constraint, ok := uniqueConstraint(err); ok {
		switch constraint {
		case referralConstraint:
			return nil, false, domainErrors.Wrap(domainErrors.ErrReferralCodeTaken, err)
		case emailConstraint:
			return nil, false, domainErrors.Wrap(domainErrors.ErrEmailTaken, err)
		default:
			return nil, false, domainErrors.Wrap(domainErrors.ErrAlreadyExists, err)
		}
	}
	return nil, false, err
}

func (r *accountRepository) SetTotal(ctx context.Context, id string, total decimal.Decimal) (*model.Account, error) {
	const query = `UPDATE accounts SET total_raised=$2::numeric, version=version+1
                   WHERE id=$1
                   RETURNING ` + accountColumns
	return r.getOne(ctx, query, id, total.String())
}
