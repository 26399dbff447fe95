package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

// DeactivateByCampaign marks every promotional post referencing the campaign
// inactive. Idempotent: already-inactive posts are left untouched, so calling
// twice produces the same end state as calling once.
func (r *PostRepo) DeactivateByCampaign(ctx context.Context, campaignID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE promo_posts
		SET is_active = false, deactivated_at = now()
		WHERE campaign_id = $1 AND is_active = true
	`, campaignID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
