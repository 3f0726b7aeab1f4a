package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

type rewardRepository struct {
	storage *Storage
}

func (r *rewardRepository) ListByTarget(ctx context.Context) ([]model.RewardTier, error) {
	const query = `SELECT id, title, description, target_amount::text, reward_text, category
                   FROM rewards ORDER BY target_amount ASC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RewardTier
	for rows.Next() {
		var (
			tier     model.RewardTier
			target   string
			category string
		)
		if err := rows.Scan(&tier.ID, &tier.Title, &tier.Description, &target, &tier.RewardText, &category); err != nil {
			return nil, err
		}
		tier.Category = model.RewardCategory(category)
		if tier.TargetAmount, err = parseDecimal(target); err != nil {
			return nil, err
		}
		result = append(result, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *rewardRepository) Upsert(ctx context.Context, tiers []model.RewardTier) error {
	const query = `INSERT INTO rewards (id, title, description, target_amount, reward_text, category)
                   VALUES ($1, $2, $3, $4::numeric, $5, $6)
                   ON CONFLICT (id) DO UPDATE
                   SET title = EXCLUDED.title,
                       description = EXCLUDED.description,
                       target_amount = EXCLUDED.target_amount,
                       reward_text = EXCLUDED.reward_text,
                       category = EXCLUDED.category`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, tier := range tiers {
			if _, err := tx.Exec(ctx, query, tier.ID, tier.Title, tier.Description, tier.TargetAmount.String(), tier.RewardText, string(tier.Category)); err != nil {
				return err
			}
		}
		return nil
	})
}
