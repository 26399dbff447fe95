package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/revuhub/admin-backend/internal/events"
	"github.com/revuhub/admin-backend/internal/models"
	"go.uber.org/zap"
)

// Mailer template kinds. The mailer sidecar only renders decision templates,
// so deletions go out on the in-app channel alone.
const (
	MailTemplateCampaignApproved = "campaign_approved"
	MailTemplateCampaignRejected = "campaign_rejected"
)

// Notifier fans campaign lifecycle events out to two independent channels:
// an in-app notification row (mirrored onto the event bus for live delivery)
// and an outbound email via the mailer sidecar. Channels run concurrently,
// each under its own timeout; a failure in one never reaches the other and
// never reaches the caller.
type Notifier struct {
	notifications NotificationStore
	users         UserStore
	mailer        MailSender
	publisher     events.Publisher
	log           *zap.Logger
	timeout       time.Duration

	wg sync.WaitGroup
}

func NewNotifier(
	notifications NotificationStore,
	users UserStore,
	mailer MailSender,
	publisher events.Publisher,
	timeout time.Duration,
	log *zap.Logger,
) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		publisher:     publisher,
		log:           log,
		timeout:       timeout,
	}
}

// Wait blocks until all in-flight dispatches finish. Used on shutdown.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) DispatchDecision(creatorID, campaignID int64, title, decision string, comment *string, actorID int64) {
	n.wg.Add(2)
	go func() {
		defer n.wg.Done()
		n.notifyInApp(creatorID, campaignID, decisionNotificationTitle(decision), decisionMessage(title, decision, comment))
	}()
	go func() {
		defer n.wg.Done()
		n.notifyEmail(creatorID, campaignID, title, decision, comment)
	}()
}

func (n *Notifier) DispatchDeleted(creatorID, campaignID int64, title string, actorID int64) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.notifyInApp(creatorID, campaignID, "Campaign deleted",
			fmt.Sprintf("Your campaign %q has been removed by the administrator.", title))
	}()
}

func (n *Notifier) notifyInApp(userID, campaignID int64, title, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	entityType := models.EntityTypeCampaign
	notification := &models.Notification{
		UserID:            userID,
		Title:             title,
		Message:           message,
		RelatedEntityID:   &campaignID,
		RelatedEntityType: &entityType,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.log.Warn("in-app notification failed",
			zap.Int64("user_id", userID),
			zap.Int64("campaign_id", campaignID),
			zap.Error(err),
		)
		return
	}

	_ = n.publisher.Publish(ctx, events.StreamNotification, events.Event{
		Type: events.EventNotificationCreated,
		Payload: map[string]any{
			"notification_id": notification.ID,
			"user_id":         userID,
			"title":           title,
			"message":         message,
			"campaign_id":     campaignID,
		},
	})
}

func (n *Notifier) notifyEmail(creatorID, campaignID int64, title, decision string, comment *string) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	creator, err := n.users.GetByID(ctx, creatorID)
	if err != nil {
		n.log.Warn("email channel skipped: creator not resolvable",
			zap.Int64("creator_id", creatorID),
			zap.Int64("campaign_id", campaignID),
			zap.Error(err),
		)
		return
	}
	if creator.Email == "" {
		n.log.Warn("email channel skipped: creator has no email",
			zap.Int64("creator_id", creatorID),
			zap.Int64("campaign_id", campaignID),
		)
		return
	}

	template := MailTemplateCampaignApproved
	if decision == models.DecisionReject {
		template = MailTemplateCampaignRejected
	}

	params := map[string]string{
		"campaign_title": title,
	}
	if comment != nil {
		params["comment"] = *comment
	}

	if err := n.mailer.SendDecisionMail(ctx, creator.Email, creator.Nickname, template, params); err != nil {
		n.log.Warn("decision email failed",
			zap.String("to", creator.Email),
			zap.Int64("campaign_id", campaignID),
			zap.Error(err),
		)
	}
}

func decisionNotificationTitle(decision string) string {
	if decision == models.DecisionApprove {
		return "Campaign approved"
	}
	return "Campaign rejected"
}

func decisionMessage(title, decision string, comment *string) string {
	var msg string
	if decision == models.DecisionApprove {
		msg = fmt.Sprintf("Your campaign %q has been approved.", title)
	} else {
		msg = fmt.Sprintf("Your campaign %q has been rejected.", title)
	}
	if comment != nil && *comment != "" {
		msg += " Reviewer comment: " + *comment
	}
	return msg
}
