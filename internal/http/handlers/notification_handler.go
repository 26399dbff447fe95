package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/revuhub/admin-backend/internal/http/dto"
	"github.com/revuhub/admin-backend/internal/middleware"
	"github.com/revuhub/admin-backend/internal/repositories"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notifications *repositories.NotificationRepo
	log           *zap.Logger
}

func NewNotificationHandler(notifications *repositories.NotificationRepo, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, log: log}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.notifications.ListByUser(c.Context(), middleware.GetUserID(c), limit, offset)
	if err != nil {
		h.log.Error("list notifications failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: items})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid notification id"})
	}

	if err := h.notifications.MarkRead(c.Context(), id, middleware.GetUserID(c)); err != nil {
		h.log.Error("mark notification read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notifications.MarkAllRead(c.Context(), middleware.GetUserID(c)); err != nil {
		h.log.Error("mark all notifications read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
