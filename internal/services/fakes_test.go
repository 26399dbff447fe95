package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/revuhub/admin-backend/internal/apperrors"
	"github.com/revuhub/admin-backend/internal/events"
	"github.com/revuhub/admin-backend/internal/models"
	"github.com/revuhub/admin-backend/internal/repositories"
)

// In-memory fakes mirroring the SQL semantics of the pgx repositories.

type fakeCampaignStore struct {
	mu        sync.Mutex
	campaigns map[int64]*models.Campaign
	users     map[int64]*models.User
	companies map[int64]string
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{
		campaigns: make(map[int64]*models.Campaign),
		users:     make(map[int64]*models.User),
		companies: make(map[int64]string),
	}
}

func (f *fakeCampaignStore) put(c models.Campaign) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := c
	f.campaigns[c.ID] = &cp
}

func (f *fakeCampaignStore) putUser(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := u
	f.users[u.ID] = &cp
}

func (f *fakeCampaignStore) GetByID(_ context.Context, id int64) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, apperrors.NotFound("campaign %d not found", id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignStore) matches(c *models.Campaign, flt repositories.CampaignFilter) bool {
	if flt.Status != nil && c.ApprovalStatus != *flt.Status {
		return false
	}
	if flt.CreatorID != nil && c.CreatorID != *flt.CreatorID {
		return false
	}
	if flt.Keyword != nil {
		kw := strings.ToLower(*flt.Keyword)
		nickname := ""
		if u, ok := f.users[c.CreatorID]; ok {
			nickname = u.Nickname
		}
		company := ""
		if c.CompanyID != nil {
			company = f.companies[*c.CompanyID]
		}
		if !strings.Contains(strings.ToLower(c.Title), kw) &&
			!strings.Contains(strings.ToLower(c.ShortDescription), kw) &&
			!strings.Contains(strings.ToLower(nickname), kw) &&
			!strings.Contains(strings.ToLower(company), kw) {
			return false
		}
	}
	return true
}

func (f *fakeCampaignStore) withCreator(c *models.Campaign) models.CampaignWithCreator {
	row := models.CampaignWithCreator{Campaign: *c}
	if u, ok := f.users[c.CreatorID]; ok {
		row.CreatorNickname = u.Nickname
		row.CreatorEmail = u.Email
	}
	if c.CompanyID != nil {
		if name, ok := f.companies[*c.CompanyID]; ok {
			row.CompanyName = &name
		}
	}
	return row
}

func (f *fakeCampaignStore) List(_ context.Context, flt repositories.CampaignFilter) ([]models.CampaignWithCreator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []*models.Campaign
	for _, c := range f.campaigns {
		if f.matches(c, flt) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	limit := flt.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 1000 {
		limit = 1000
	}
	var rows []models.CampaignWithCreator
	for i := flt.Offset; i < len(all) && len(rows) < limit; i++ {
		rows = append(rows, f.withCreator(all[i]))
	}
	return rows, nil
}

func (f *fakeCampaignStore) Count(_ context.Context, flt repositories.CampaignFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.campaigns {
		if f.matches(c, flt) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCampaignStore) CountExpiredWithinStatus(_ context.Context, status string, today time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.campaigns {
		if c.ApprovalStatus == status && models.ExpiredOn(c.RecruitmentEndDate, today) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCampaignStore) DecideApproval(_ context.Context, id int64, status string, adminID int64, comment *string, at time.Time) (*models.Campaign, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok || c.ApprovalStatus != models.StatusPending {
		return nil, false, nil
	}
	c.ApprovalStatus = status
	c.ApprovedBy = &adminID
	c.ApprovalComment = comment
	c.ApprovalDate = &at
	c.UpdatedAt = at
	cp := *c
	return &cp, true, nil
}

func (f *fakeCampaignStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.campaigns[id]; !ok {
		return apperrors.NotFound("campaign %d not found", id)
	}
	delete(f.campaigns, id)
	return nil
}

func (f *fakeCampaignStore) GetDetailByID(ctx context.Context, id int64) (*models.CampaignDetail, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &models.CampaignDetail{CampaignWithCreator: f.withCreator(c)}
	if c.CampaignType != models.CampaignTypeDelivery {
		d.Location = &models.CampaignLocation{CampaignID: c.ID, Address: "1 Test St"}
	}
	if c.ApprovedBy != nil {
		if u, ok := f.users[*c.ApprovedBy]; ok {
			d.ApproverNickname = &u.Nickname
		}
	}
	return d, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int64]*models.User)}
	for _, u := range users {
		cp := u
		s.users[u.ID] = &cp
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user %d not found", id)
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("no user with email %s", email)
}

type fakeNotificationStore struct {
	mu      sync.Mutex
	err     error
	created []models.Notification
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	n.ID = int64(len(s.created) + 1)
	s.created = append(s.created, *n)
	return nil
}

func (s *fakeNotificationStore) all() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.created...)
}

type mailCall struct {
	to       string
	template string
	params   map[string]string
}

type fakeMailSender struct {
	mu    sync.Mutex
	err   error
	calls []mailCall
}

func (s *fakeMailSender) SendDecisionMail(_ context.Context, to, _ string, template string, params map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, mailCall{to: to, template: template, params: params})
	return s.err
}

func (s *fakeMailSender) sent() []mailCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailCall(nil), s.calls...)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, _ string, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

type fakePromoPostStore struct {
	mu     sync.Mutex
	err    error
	active map[int64]int // campaign id -> active post count
}

func newFakePromoPostStore() *fakePromoPostStore {
	return &fakePromoPostStore{active: make(map[int64]int)}
}

func (s *fakePromoPostStore) DeactivateByCampaign(_ context.Context, campaignID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	n := int64(s.active[campaignID])
	s.active[campaignID] = 0
	return n, nil
}

func (s *fakePromoPostStore) activeCount(campaignID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[campaignID]
}

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (s *fakeAuditStore) Log(_ context.Context, entry models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

type dispatchCall struct {
	creatorID  int64
	campaignID int64
	title      string
	decision   string
}

type fakeDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
}

func (d *fakeDispatcher) DispatchDecision(creatorID, campaignID int64, title, decision string, _ *string, _ int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{creatorID, campaignID, title, decision})
}

func (d *fakeDispatcher) DispatchDeleted(creatorID, campaignID int64, title string, _ int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{creatorID, campaignID, title, "DELETED"})
}

func (d *fakeDispatcher) dispatched() []dispatchCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]dispatchCall(nil), d.calls...)
}
