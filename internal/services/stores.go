package services

import (
	"context"
	"time"

	"github.com/revuhub/admin-backend/internal/models"
	"github.com/revuhub/admin-backend/internal/repositories"
)

// Consumer-side store interfaces. The pgx-backed repositories satisfy them;
// tests substitute in-memory fakes.

type CampaignStore interface {
	GetByID(ctx context.Context, id int64) (*models.Campaign, error)
	List(ctx context.Context, f repositories.CampaignFilter) ([]models.CampaignWithCreator, error)
	Count(ctx context.Context, f repositories.CampaignFilter) (int64, error)
	CountExpiredWithinStatus(ctx context.Context, status string, today time.Time) (int64, error)
	DecideApproval(ctx context.Context, id int64, status string, adminID int64, comment *string, at time.Time) (*models.Campaign, bool, error)
	Delete(ctx context.Context, id int64) error
	GetDetailByID(ctx context.Context, id int64) (*models.CampaignDetail, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

type PromoPostStore interface {
	DeactivateByCampaign(ctx context.Context, campaignID int64) (int64, error)
}

type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

type MailSender interface {
	SendDecisionMail(ctx context.Context, to, recipientName, template string, params map[string]string) error
}

// DecisionDispatcher fans a campaign lifecycle event out to the notification
// channels. Implementations must be non-blocking.
type DecisionDispatcher interface {
	DispatchDecision(creatorID, campaignID int64, title, decision string, comment *string, actorID int64)
	DispatchDeleted(creatorID, campaignID int64, title string, actorID int64)
}
