package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/revuhub/admin-backend/internal/events"
	"github.com/revuhub/admin-backend/internal/models"
	"go.uber.org/zap"
)

type notifierEnv struct {
	notifier      *Notifier
	notifications *fakeNotificationStore
	mailer        *fakeMailSender
	publisher     *fakePublisher
}

func newNotifierEnv(t *testing.T) *notifierEnv {
	t.Helper()
	notifications := &fakeNotificationStore{}
	mailer := &fakeMailSender{}
	publisher := &fakePublisher{}
	users := newFakeUserStore(testUsers()...)
	n := NewNotifier(notifications, users, mailer, publisher, time.Second, zap.NewNop())
	return &notifierEnv{notifier: n, notifications: notifications, mailer: mailer, publisher: publisher}
}

func TestDispatchDecisionBothChannels(t *testing.T) {
	env := newNotifierEnv(t)

	env.notifier.DispatchDecision(7, 42, "Spring cafe visit", models.DecisionApprove, strPtr("nice"), 1)
	env.notifier.Wait()

	created := env.notifications.all()
	if len(created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(created))
	}
	n := created[0]
	if n.UserID != 7 {
		t.Errorf("notification user = %d, want 7", n.UserID)
	}
	if n.RelatedEntityID == nil || *n.RelatedEntityID != 42 {
		t.Errorf("related entity = %v, want 42", n.RelatedEntityID)
	}
	if !strings.Contains(n.Message, "approved") || !strings.Contains(n.Message, "nice") {
		t.Errorf("message = %q, want decision and comment", n.Message)
	}

	sent := env.mailer.sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(sent))
	}
	if sent[0].to != creatorEmail {
		t.Errorf("mail to = %s, want %s", sent[0].to, creatorEmail)
	}
	if sent[0].template != MailTemplateCampaignApproved {
		t.Errorf("template = %s, want %s", sent[0].template, MailTemplateCampaignApproved)
	}
	if sent[0].params["comment"] != "nice" {
		t.Errorf("params = %v, want comment included", sent[0].params)
	}

	published := env.publisher.published()
	if len(published) != 1 || published[0].Type != events.EventNotificationCreated {
		t.Errorf("published = %+v, want one %s event", published, events.EventNotificationCreated)
	}
}

func TestDispatchDecisionRejectTemplate(t *testing.T) {
	env := newNotifierEnv(t)

	env.notifier.DispatchDecision(7, 42, "Spring cafe visit", models.DecisionReject, nil, 1)
	env.notifier.Wait()

	sent := env.mailer.sent()
	if len(sent) != 1 || sent[0].template != MailTemplateCampaignRejected {
		t.Fatalf("sent = %+v, want one %s mail", sent, MailTemplateCampaignRejected)
	}
	if _, ok := sent[0].params["comment"]; ok {
		t.Errorf("params = %v, nil comment should be omitted", sent[0].params)
	}
}

func TestEmailFailureDoesNotAffectInApp(t *testing.T) {
	env := newNotifierEnv(t)
	env.mailer.err = errors.New("smtp relay down")

	env.notifier.DispatchDecision(7, 42, "Spring cafe visit", models.DecisionApprove, nil, 1)
	env.notifier.Wait()

	if got := env.notifications.all(); len(got) != 1 {
		t.Errorf("created %d notifications, want 1 despite mail failure", len(got))
	}
}

func TestInAppFailureDoesNotAffectEmail(t *testing.T) {
	env := newNotifierEnv(t)
	env.notifications.err = errors.New("insert failed")

	env.notifier.DispatchDecision(7, 42, "Spring cafe visit", models.DecisionApprove, nil, 1)
	env.notifier.Wait()

	if got := env.mailer.sent(); len(got) != 1 {
		t.Errorf("sent %d mails, want 1 despite in-app failure", len(got))
	}
	if got := env.publisher.published(); len(got) != 0 {
		t.Errorf("published %d events, want 0 when the row was not created", len(got))
	}
}

func TestEmailSkippedForUnknownCreator(t *testing.T) {
	env := newNotifierEnv(t)

	env.notifier.DispatchDecision(999, 42, "Spring cafe visit", models.DecisionApprove, nil, 1)
	env.notifier.Wait()

	if got := env.mailer.sent(); len(got) != 0 {
		t.Errorf("sent %d mails, want 0 for unresolvable creator", len(got))
	}
	// The in-app channel still records against the given user id.
	if got := env.notifications.all(); len(got) != 1 {
		t.Errorf("created %d notifications, want 1", len(got))
	}
}

func TestDispatchDeletedInAppOnly(t *testing.T) {
	env := newNotifierEnv(t)

	env.notifier.DispatchDeleted(7, 42, "Spring cafe visit", 1)
	env.notifier.Wait()

	if got := env.mailer.sent(); len(got) != 0 {
		t.Errorf("sent %d mails, want 0 for deletion", len(got))
	}
	created := env.notifications.all()
	if len(created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(created))
	}
	if !strings.Contains(created[0].Message, "removed") {
		t.Errorf("message = %q, want deletion wording", created[0].Message)
	}
}
