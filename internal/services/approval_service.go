package services

import (
	"context"
	"time"

	"github.com/revuhub/admin-backend/internal/apperrors"
	"github.com/revuhub/admin-backend/internal/events"
	"github.com/revuhub/admin-backend/internal/models"
	"github.com/revuhub/admin-backend/internal/rbac"
	"go.uber.org/zap"
)

// DecisionReceipt is returned to the operator after a successful decision.
type DecisionReceipt struct {
	CampaignID        int64      `json:"campaign_id"`
	Title             string     `json:"title"`
	ApprovalStatus    string     `json:"approval_status"`
	Comment           *string    `json:"comment,omitempty"`
	DecidedAt         time.Time  `json:"decided_at"`
	DecidedByID       int64      `json:"decided_by_id"`
	DecidedByNickname string     `json:"decided_by_nickname"`
}

type DeletionReceipt struct {
	CampaignID     int64     `json:"campaign_id"`
	DeletedAt      time.Time `json:"deleted_at"`
	DeletedByEmail string    `json:"deleted_by_email"`
}

// ApprovalService owns the one-shot PENDING -> APPROVED/REJECTED transition
// and administrative deletion. It is the only writer of the approval fields
// after campaign creation.
type ApprovalService struct {
	campaigns  CampaignStore
	users      UserStore
	posts      PromoPostStore
	audit      AuditStore
	dispatcher DecisionDispatcher
	publisher  events.Publisher
	log        *zap.Logger
	now        func() time.Time
}

func NewApprovalService(
	campaigns CampaignStore,
	users UserStore,
	posts PromoPostStore,
	audit AuditStore,
	dispatcher DecisionDispatcher,
	publisher events.Publisher,
	log *zap.Logger,
) *ApprovalService {
	return &ApprovalService{
		campaigns:  campaigns,
		users:      users,
		posts:      posts,
		audit:      audit,
		dispatcher: dispatcher,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

func (s *ApprovalService) resolveActor(ctx context.Context, email, permission string) (*models.User, error) {
	actor, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, apperrors.Unauthorized("no account for %s", email)
		}
		return nil, err
	}
	if !rbac.HasPermission(actor.Role, permission) {
		return nil, apperrors.Forbidden("account %s may not %s", email, permission)
	}
	return actor, nil
}

// Decide executes the one-shot approval transition. The status check and the
// field mutation are a single conditional update, so two racing decisions on
// the same pending campaign produce exactly one winner; the loser receives
// the ALREADY_PROCESSED conflict.
func (s *ApprovalService) Decide(ctx context.Context, actorEmail string, campaignID int64, decision string, comment *string) (*DecisionReceipt, error) {
	actor, err := s.resolveActor(ctx, actorEmail, rbac.PermDecideCampaign)
	if err != nil {
		return nil, err
	}

	if !models.IsValidDecision(decision) {
		return nil, apperrors.InvalidDecision("decision must be APPROVE or REJECT, got %q", decision)
	}

	newStatus := models.DecisionStatus(decision)
	decidedAt := s.now()

	c, ok, err := s.campaigns.DecideApproval(ctx, campaignID, newStatus, actor.ID, comment, decidedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// No pending row matched: distinguish missing from already decided.
		existing, getErr := s.campaigns.GetByID(ctx, campaignID)
		if getErr != nil {
			return nil, getErr
		}
		return nil, apperrors.AlreadyProcessed("campaign %d already %s", campaignID, existing.ApprovalStatus)
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "admin",
		Action:      "campaign_" + decisionAction(decision),
		EntityType:  models.EntityTypeCampaign,
		EntityID:    &c.ID,
		Meta:        map[string]any{"decision": decision, "comment": comment},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type: events.EventCampaignDecided,
		Payload: map[string]any{
			"campaign_id": c.ID,
			"creator_id":  c.CreatorID,
			"title":       c.Title,
			"decision":    decision,
			"actor_id":    actor.ID,
		},
	})

	// Post-commit fan-out: the decision is already durable, so notification
	// failures must never surface here.
	s.dispatcher.DispatchDecision(c.CreatorID, c.ID, c.Title, decision, comment, actor.ID)

	s.log.Info("campaign decided",
		zap.Int64("campaign_id", c.ID),
		zap.String("status", newStatus),
		zap.Int64("actor_id", actor.ID),
	)

	return &DecisionReceipt{
		CampaignID:        c.ID,
		Title:             c.Title,
		ApprovalStatus:    c.EffectiveStatusOn(decidedAt),
		Comment:           c.ApprovalComment,
		DecidedAt:         decidedAt,
		DecidedByID:       actor.ID,
		DecidedByNickname: actor.Nickname,
	}, nil
}

// Delete removes a campaign. The storage layer cascades to applications,
// location and mission rows; promotional-post deactivation and the creator
// notification are best-effort and do not block or fail the deletion.
func (s *ApprovalService) Delete(ctx context.Context, actorEmail string, campaignID int64) (*DeletionReceipt, error) {
	actor, err := s.resolveActor(ctx, actorEmail, rbac.PermDeleteCampaign)
	if err != nil {
		return nil, err
	}

	c, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if err := s.campaigns.Delete(ctx, campaignID); err != nil {
		return nil, err
	}
	deletedAt := s.now()

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "admin",
		Action:      "campaign_deleted",
		EntityType:  models.EntityTypeCampaign,
		EntityID:    &campaignID,
		Meta:        map[string]any{"title": c.Title},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaign, events.Event{
		Type: events.EventCampaignDeleted,
		Payload: map[string]any{
			"campaign_id": campaignID,
			"creator_id":  c.CreatorID,
			"title":       c.Title,
			"actor_id":    actor.ID,
		},
	})

	go s.deactivatePromoPosts(campaignID)
	s.dispatcher.DispatchDeleted(c.CreatorID, campaignID, c.Title, actor.ID)

	s.log.Info("campaign deleted",
		zap.Int64("campaign_id", campaignID),
		zap.Int64("actor_id", actor.ID),
	)

	return &DeletionReceipt{
		CampaignID:     campaignID,
		DeletedAt:      deletedAt,
		DeletedByEmail: actor.Email,
	}, nil
}

func (s *ApprovalService) deactivatePromoPosts(campaignID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := s.posts.DeactivateByCampaign(ctx, campaignID)
	if err != nil {
		s.log.Warn("promo post deactivation failed",
			zap.Int64("campaign_id", campaignID),
			zap.Error(err),
		)
		return
	}
	if n > 0 {
		s.log.Info("promo posts deactivated",
			zap.Int64("campaign_id", campaignID),
			zap.Int64("count", n),
		)
	}
}

func decisionAction(decision string) string {
	if decision == models.DecisionApprove {
		return "approved"
	}
	return "rejected"
}
