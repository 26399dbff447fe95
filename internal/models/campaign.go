package models

import "time"

// Stored approval statuses. StatusExpired is never written to storage — it is
// derived from the recruitment deadline at read time.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusExpired  = "EXPIRED"
)

// Operator decisions on a pending campaign.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// Campaign types. Delivery campaigns have no physical location.
const (
	CampaignTypeVisit    = "visit"
	CampaignTypeDelivery = "delivery"
	CampaignTypeReporter = "reporter"
)

func IsStoredStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

func IsEffectiveStatus(s string) bool {
	return IsStoredStatus(s) || s == StatusExpired
}

func IsValidDecision(d string) bool {
	return d == DecisionApprove || d == DecisionReject
}

// DecisionStatus maps an operator decision to the stored status it produces.
func DecisionStatus(d string) string {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

type Campaign struct {
	ID                   int64      `json:"id"`
	CreatorID            int64      `json:"creator_id"`
	CompanyID            *int64     `json:"company_id,omitempty"`
	Title                string     `json:"title"`
	ShortDescription     string     `json:"short_description"`
	DescriptionHTML      *string    `json:"description_html,omitempty"`
	CampaignType         string     `json:"campaign_type"` // visit / delivery / reporter
	Category             *string    `json:"category,omitempty"`
	RecruitCount         int        `json:"recruit_count"`
	RecruitmentStartDate time.Time  `json:"recruitment_start_date"`
	RecruitmentEndDate   *time.Time `json:"recruitment_end_date,omitempty"` // nil = always open
	SelectionDate        *time.Time `json:"selection_date,omitempty"`
	ApprovalStatus       string     `json:"approval_status"`
	ApprovalComment      *string    `json:"approval_comment,omitempty"`
	ApprovalDate         *time.Time `json:"approval_date,omitempty"`
	ApprovedBy           *int64     `json:"approved_by,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ExpiredOn reports whether a recruitment deadline has passed as of now.
// The comparison is by calendar date: a campaign whose recruitment ends today
// is still open, and a nil deadline means always-open. Every read path
// (listing, search, detail, stats) classifies through this function.
func ExpiredOn(endDate *time.Time, now time.Time) bool {
	if endDate == nil {
		return false
	}
	end := truncateToDate(*endDate, now.Location())
	today := truncateToDate(now, now.Location())
	return end.Before(today)
}

func truncateToDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EffectiveStatusOn returns the status shown to operators: EXPIRED when the
// recruitment deadline has passed, the stored approval status otherwise.
func (c *Campaign) EffectiveStatusOn(now time.Time) string {
	if ExpiredOn(c.RecruitmentEndDate, now) {
		return StatusExpired
	}
	return c.ApprovalStatus
}

// CampaignWithCreator embeds Campaign and adds creator/company info to avoid
// N+1 queries on listing pages.
type CampaignWithCreator struct {
	Campaign
	CreatorNickname string  `json:"creator_nickname"`
	CreatorEmail    string  `json:"creator_email"`
	CompanyName     *string `json:"company_name,omitempty"`
}

type CampaignLocation struct {
	CampaignID int64    `json:"campaign_id"`
	Address    string   `json:"address"`
	Region     *string  `json:"region,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

type CampaignMission struct {
	CampaignID   int64    `json:"campaign_id"`
	Requirements string   `json:"requirements"`
	Keywords     []string `json:"keywords,omitempty"`
}

// CampaignDetail is the full admin view of a single campaign.
type CampaignDetail struct {
	CampaignWithCreator
	Location         *CampaignLocation `json:"location,omitempty"` // omitted for delivery campaigns
	Mission          *CampaignMission  `json:"mission,omitempty"`
	ApproverNickname *string           `json:"approver_nickname,omitempty"`
	ApplicationCount int               `json:"application_count"`
}
