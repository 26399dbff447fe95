package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/revuhub/admin-backend/internal/apperrors"
	"github.com/revuhub/admin-backend/internal/http/dto"
	"github.com/revuhub/admin-backend/internal/middleware"
	"github.com/revuhub/admin-backend/internal/models"
	"github.com/revuhub/admin-backend/internal/repositories"
	"github.com/revuhub/admin-backend/internal/services"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	approval *services.ApprovalService
	queries  *services.QueryService
	stats    *services.StatsService
	audit    *repositories.AuditRepo
	log      *zap.Logger
}

func NewCampaignHandler(
	approval *services.ApprovalService,
	queries *services.QueryService,
	stats *services.StatsService,
	audit *repositories.AuditRepo,
	log *zap.Logger,
) *CampaignHandler {
	return &CampaignHandler{approval: approval, queries: queries, stats: stats, audit: audit, log: log}
}

// errorStatus maps service error codes onto HTTP statuses. Unknown errors are
// logged and surface as an opaque 500.
func errorStatus(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeNotFound:
		return fiber.StatusNotFound
	case apperrors.CodeAlreadyProcessed:
		return fiber.StatusConflict
	case apperrors.CodeInvalidDecision, apperrors.CodeInvalidArgument:
		return fiber.StatusBadRequest
	case apperrors.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *CampaignHandler) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		h.log.Error("campaign request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(dto.ErrorResponse{
			Error:     "internal error",
			RequestID: middleware.GetRequestID(c),
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:     err.Error(),
		Code:      apperrors.CodeOf(err),
		RequestID: middleware.GetRequestID(c),
	})
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", "20"))
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return page, size
}

func statusParam(c *fiber.Ctx) *string {
	if v := c.Query("status"); v != "" {
		return &v
	}
	return nil
}

func campaignID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func (h *CampaignHandler) ListPending(c *fiber.Ctx) error {
	page, size := pageParams(c)
	result, err := h.queries.ListPending(c.Context(), page, size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: result})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	page, size := pageParams(c)
	result, err := h.queries.ListAll(c.Context(), page, size, statusParam(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: result})
}

func (h *CampaignHandler) SearchCampaigns(c *fiber.Ctx) error {
	page, size := pageParams(c)
	result, err := h.queries.Search(c.Context(), c.Query("keyword"), page, size, statusParam(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: result})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := campaignID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	detail, err := h.queries.Detail(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: detail})
}

func (h *CampaignHandler) Decide(c *fiber.Ctx) error {
	id, err := campaignID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	receipt, err := h.approval.Decide(c.Context(), middleware.GetEmail(c), id, req.Decision, req.Comment)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: receipt})
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, err := campaignID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	receipt, err := h.approval.Delete(c.Context(), middleware.GetEmail(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: receipt})
}

func (h *CampaignHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stats.Stats(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: stats})
}

func (h *CampaignHandler) GetEvents(c *fiber.Ctx) error {
	id, err := campaignID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	page, size := pageParams(c)
	if size > 100 {
		size = 100
	}
	entries, err := h.audit.GetByEntity(c.Context(), models.EntityTypeCampaign, id, size, (page-1)*size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
