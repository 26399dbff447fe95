package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/revuhub/admin-backend/internal/apperrors"
	"github.com/revuhub/admin-backend/internal/models"
)

const campaignColumns = `
	c.id, c.creator_id, c.company_id, c.title, c.short_description, c.description_html,
	c.campaign_type, c.category, c.recruit_count,
	c.recruitment_start_date, c.recruitment_end_date, c.selection_date,
	c.approval_status, c.approval_comment, c.approval_date, c.approved_by,
	c.created_at, c.updated_at`

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT`+campaignColumns+`
		FROM campaigns c WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.CreatorID, &c.CompanyID, &c.Title, &c.ShortDescription, &c.DescriptionHTML,
		&c.CampaignType, &c.Category, &c.RecruitCount,
		&c.RecruitmentStartDate, &c.RecruitmentEndDate, &c.SelectionDate,
		&c.ApprovalStatus, &c.ApprovalComment, &c.ApprovalDate, &c.ApprovedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("campaign %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type CampaignFilter struct {
	Status    *string // stored approval status
	CreatorID *int64
	Keyword   *string // matched against title / short description / creator nickname / company name
	Limit     int
	Offset    int
}

func (f CampaignFilter) build(argIdx int) (string, []any, int) {
	args := []any{}
	where := ""

	appendCond := func(cond string, val any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, val)
		argIdx++
	}

	if f.Status != nil {
		appendCond(fmt.Sprintf("c.approval_status = $%d", argIdx), *f.Status)
	}
	if f.CreatorID != nil {
		appendCond(fmt.Sprintf("c.creator_id = $%d", argIdx), *f.CreatorID)
	}
	if f.Keyword != nil {
		cond := fmt.Sprintf(
			"(c.title ILIKE $%d OR c.short_description ILIKE $%d OR u.nickname ILIKE $%d OR co.name ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx)
		appendCond(cond, "%"+*f.Keyword+"%")
	}

	return where, args, argIdx
}

// List returns campaigns joined with creator and company info, newest first.
func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.CampaignWithCreator, error) {
	query := `
		SELECT` + campaignColumns + `, u.nickname, u.email, co.name
		FROM campaigns c
		JOIN users u ON u.id = c.creator_id
		LEFT JOIN companies co ON co.id = c.company_id
	`

	where, args, argIdx := f.build(1)
	query += where

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 1000 {
		limit = 1000
	}
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.CampaignWithCreator
	for rows.Next() {
		var c models.CampaignWithCreator
		if err := rows.Scan(
			&c.ID, &c.CreatorID, &c.CompanyID, &c.Title, &c.ShortDescription, &c.DescriptionHTML,
			&c.CampaignType, &c.Category, &c.RecruitCount,
			&c.RecruitmentStartDate, &c.RecruitmentEndDate, &c.SelectionDate,
			&c.ApprovalStatus, &c.ApprovalComment, &c.ApprovalDate, &c.ApprovedBy,
			&c.CreatedAt, &c.UpdatedAt,
			&c.CreatorNickname, &c.CreatorEmail, &c.CompanyName,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// Count returns the number of campaigns matching the filter, ignoring
// Limit/Offset.
func (r *CampaignRepo) Count(ctx context.Context, f CampaignFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM campaigns c
		JOIN users u ON u.id = c.creator_id
		LEFT JOIN companies co ON co.id = c.company_id
	`
	where, args, _ := f.build(1)
	query += where

	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountExpiredWithinStatus counts campaigns with the given stored status whose
// recruitment deadline is strictly before today. The date comparison must stay
// in lockstep with models.ExpiredOn.
func (r *CampaignRepo) CountExpiredWithinStatus(ctx context.Context, status string, today time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM campaigns c
		WHERE c.approval_status = $1
		  AND c.recruitment_end_date IS NOT NULL
		  AND c.recruitment_end_date < $2::date
	`, status, today).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// DecideApproval performs the one-shot approval transition as a conditional
// update keyed on the expected PENDING status. When two decisions race on the
// same campaign, exactly one matches the WHERE clause; ok is false for the
// loser (and for campaigns already decided or missing).
func (r *CampaignRepo) DecideApproval(ctx context.Context, id int64, status string, adminID int64, comment *string, at time.Time) (*models.Campaign, bool, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		UPDATE campaigns c
		SET approval_status = $1, approved_by = $2, approval_comment = $3, approval_date = $4, updated_at = now()
		WHERE c.id = $5 AND c.approval_status = $6
		RETURNING`+campaignColumns+`
	`, status, adminID, comment, at, id, models.StatusPending).Scan(
		&c.ID, &c.CreatorID, &c.CompanyID, &c.Title, &c.ShortDescription, &c.DescriptionHTML,
		&c.CampaignType, &c.Category, &c.RecruitCount,
		&c.RecruitmentStartDate, &c.RecruitmentEndDate, &c.SelectionDate,
		&c.ApprovalStatus, &c.ApprovalComment, &c.ApprovalDate, &c.ApprovedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

// Delete removes a campaign. Applications, location and mission rows cascade
// at the storage layer.
func (r *CampaignRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("campaign %d not found", id)
	}
	return nil
}

// GetDetailByID composes the full admin view: creator, company, location,
// mission, deciding admin and application count.
func (r *CampaignRepo) GetDetailByID(ctx context.Context, id int64) (*models.CampaignDetail, error) {
	var d models.CampaignDetail
	var (
		locAddress *string
		locRegion  *string
		locLat     *float64
		locLng     *float64
		missionReq *string
		missionKW  []string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT`+campaignColumns+`, u.nickname, u.email, co.name,
		       cl.address, cl.region, cl.lat, cl.lng,
		       cm.requirements, cm.keywords,
		       a.nickname,
		       (SELECT COUNT(*) FROM campaign_applications ca WHERE ca.campaign_id = c.id)
		FROM campaigns c
		JOIN users u ON u.id = c.creator_id
		LEFT JOIN companies co ON co.id = c.company_id
		LEFT JOIN campaign_locations cl ON cl.campaign_id = c.id
		LEFT JOIN campaign_missions cm ON cm.campaign_id = c.id
		LEFT JOIN users a ON a.id = c.approved_by
		WHERE c.id = $1
	`, id).Scan(
		&d.ID, &d.CreatorID, &d.CompanyID, &d.Title, &d.ShortDescription, &d.DescriptionHTML,
		&d.CampaignType, &d.Category, &d.RecruitCount,
		&d.RecruitmentStartDate, &d.RecruitmentEndDate, &d.SelectionDate,
		&d.ApprovalStatus, &d.ApprovalComment, &d.ApprovalDate, &d.ApprovedBy,
		&d.CreatedAt, &d.UpdatedAt,
		&d.CreatorNickname, &d.CreatorEmail, &d.CompanyName,
		&locAddress, &locRegion, &locLat, &locLng,
		&missionReq, &missionKW,
		&d.ApproverNickname,
		&d.ApplicationCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("campaign %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if locAddress != nil {
		d.Location = &models.CampaignLocation{
			CampaignID: d.ID,
			Address:    *locAddress,
			Region:     locRegion,
			Lat:        locLat,
			Lng:        locLng,
		}
	}
	if missionReq != nil {
		d.Mission = &models.CampaignMission{
			CampaignID:   d.ID,
			Requirements: *missionReq,
			Keywords:     missionKW,
		}
	}
	return &d, nil
}
