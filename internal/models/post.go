package models

import "time"

// PromoPost is a promotional content item referencing a campaign. Posts are
// deactivated, never deleted, when their campaign is removed.
type PromoPost struct {
	ID            int64      `json:"id"`
	CampaignID    int64      `json:"campaign_id"`
	Title         string     `json:"title"`
	IsActive      bool       `json:"is_active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
