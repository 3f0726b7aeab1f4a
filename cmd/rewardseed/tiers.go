package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
)

type tierFile struct {
	Tiers []tierEntry `yaml:"tiers"`
}

type tierEntry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Target      string `yaml:"target"`
	Reward      string `yaml:"reward"`
	Category    string `yaml:"category"`
}

// loadTiers decodes and validates a tier document. Targets must be positive and unique.
func loadTiers(r io.Reader) ([]model.RewardTier, error) {
	var doc tierFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode tiers: %w", err)
	}
	if len(doc.Tiers) == 0 {
		return nil, fmt.Errorf("no tiers defined")
	}

	ids := make(map[string]struct{}, len(doc.Tiers))
	targets := make(map[string]string, len(doc.Tiers))
	tiers := make([]model.RewardTier, 0, len(doc.Tiers))
	for i, e := range doc.Tiers {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("tier %d: id is required", i)
		}
		if _, dup := ids[id]; dup {
			return nil, fmt.Errorf("tier %q: duplicate id", id)
		}
		ids[id] = struct{}{}

		target, err := decimal.NewFromString(strings.TrimSpace(e.Target))
		if err != nil {
			return nil, fmt.Errorf("tier %q: invalid target %q: %w", id, e.Target, err)
		}
		if !target.IsPositive() {
			return nil, fmt.Errorf("tier %q: target must be positive", id)
		}
		key := target.String()
		if other, dup := targets[key]; dup {
			return nil, fmt.Errorf("tier %q: target %s already used by %q", id, key, other)
		}
		targets[key] = id

		category := model.RewardCategory(strings.ToLower(strings.TrimSpace(e.Category)))
		if !category.Valid() {
			return nil, fmt.Errorf("tier %q: unknown category %q", id, e.Category)
		}

		tiers = append(tiers, model.RewardTier{
			ID:           id,
			Title:        e.Title,
			Description:  e.Description,
			TargetAmount: target,
			RewardText:   e.Reward,
			Category:     category,
		})
	}
	return tiers, nil
}

func seed(ctx context.Context, repo repository.RewardRepository, tiers []model.RewardTier) error {
	if err := repo.Upsert(ctx, tiers); err != nil {
		return fmt.Errorf("upsert tiers: %w", err)
	}
	return nil
}
