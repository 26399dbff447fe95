package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/revuhub/admin-backend/internal/models"
	"go.uber.org/zap"
)

func newStatsService(campaigns *fakeCampaignStore, now time.Time) *StatsService {
	svc := NewStatsService(campaigns, nil, time.Minute, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestStatsBuckets(t *testing.T) {
	campaigns := newFakeCampaignStore()
	now := date(2025, 9, 1)

	seed := []struct {
		id     int64
		status string
		end    *time.Time
	}{
		{1, models.StatusApproved, datePtr(2025, 8, 15)}, // expired
		{2, models.StatusApproved, datePtr(2025, 9, 15)},
		{3, models.StatusApproved, nil},
		{4, models.StatusPending, datePtr(2025, 8, 10)}, // expired
		{5, models.StatusPending, nil},
		{6, models.StatusRejected, datePtr(2025, 7, 1)}, // expired
		{7, models.StatusRejected, datePtr(2025, 9, 1)}, // ends today, still open
	}
	for _, s := range seed {
		c := pendingCampaign(s.id)
		c.ApprovalStatus = s.status
		c.RecruitmentEndDate = s.end
		campaigns.put(c)
	}

	stats, err := newStatsService(campaigns, now).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := CampaignStats{
		TotalCampaigns:    7,
		PendingCampaigns:  1,
		ApprovedCampaigns: 2,
		RejectedCampaigns: 1,
		ExpiredCampaigns:  3,
	}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

// Every campaign lands in exactly one bucket, whatever mix of statuses and
// deadlines the table holds.
func TestStatsPartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := date(2025, 9, 1)
	statuses := []string{models.StatusPending, models.StatusApproved, models.StatusRejected}

	campaigns := newFakeCampaignStore()
	var wantExpired int64
	for i := int64(1); i <= 200; i++ {
		c := pendingCampaign(i)
		c.ApprovalStatus = statuses[rng.Intn(len(statuses))]
		if rng.Intn(3) != 0 {
			end := now.AddDate(0, 0, rng.Intn(61)-30)
			c.RecruitmentEndDate = &end
		} else {
			c.RecruitmentEndDate = nil
		}
		if models.ExpiredOn(c.RecruitmentEndDate, now) {
			wantExpired++
		}
		campaigns.put(c)
	}

	stats, err := newStatsService(campaigns, now).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	sum := stats.PendingCampaigns + stats.ApprovedCampaigns + stats.RejectedCampaigns + stats.ExpiredCampaigns
	if sum != stats.TotalCampaigns {
		t.Errorf("buckets sum to %d, total is %d", sum, stats.TotalCampaigns)
	}
	if stats.TotalCampaigns != 200 {
		t.Errorf("total = %d, want 200", stats.TotalCampaigns)
	}
	if stats.ExpiredCampaigns != wantExpired {
		t.Errorf("expired = %d, want %d", stats.ExpiredCampaigns, wantExpired)
	}
}

func TestStatsAgreeWithListings(t *testing.T) {
	campaigns := newFakeCampaignStore()
	for _, u := range testUsers() {
		campaigns.putUser(u)
	}
	now := date(2025, 9, 1)

	c := pendingCampaign(42)
	c.ApprovalStatus = models.StatusApproved
	c.RecruitmentEndDate = datePtr(2025, 8, 15)
	campaigns.put(c)

	stats, err := newStatsService(campaigns, now).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.ApprovedCampaigns != 0 || stats.ExpiredCampaigns != 1 {
		t.Errorf("stats = %+v, want the row under expired only", *stats)
	}

	// The listing classifies the same row the same way.
	qsvc := NewQueryService(campaigns, 1000, zap.NewNop())
	qsvc.now = func() time.Time { return now }
	status := models.StatusExpired
	page, err := qsvc.ListAll(context.Background(), 1, 20, &status)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if page.Total != stats.ExpiredCampaigns {
		t.Errorf("listing total = %d, stats expired = %d", page.Total, stats.ExpiredCampaigns)
	}
}

func TestStatsEmptyTable(t *testing.T) {
	stats, err := newStatsService(newFakeCampaignStore(), date(2025, 9, 1)).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if *stats != (CampaignStats{}) {
		t.Errorf("stats = %+v, want all zero", *stats)
	}
}
