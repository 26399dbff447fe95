package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/revuhub/admin-backend/internal/http/dto"
	"github.com/revuhub/admin-backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaCampaignType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type MetaCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedCampaignTypes = []MetaCampaignType{
	{ID: models.CampaignTypeVisit, Label: "Visit"},
	{ID: models.CampaignTypeDelivery, Label: "Delivery"},
	{ID: models.CampaignTypeReporter, Label: "Reporter"},
}

var predefinedCategories = []MetaCategory{
	{ID: "restaurant", Label: "Restaurants & Cafes"},
	{ID: "beauty", Label: "Beauty & Care"},
	{ID: "fashion", Label: "Fashion"},
	{ID: "food", Label: "Food & Groceries"},
	{ID: "living", Label: "Home & Living"},
	{ID: "digital", Label: "Digital & Electronics"},
	{ID: "travel", Label: "Travel & Stays"},
	{ID: "culture", Label: "Culture & Events"},
	{ID: "kids", Label: "Kids & Family"},
	{ID: "pets", Label: "Pets"},
	{ID: "sports", Label: "Sports & Fitness"},
	{ID: "education", Label: "Education & Classes"},
	{ID: "other", Label: "Other"},
}

func (h *MetaHandler) GetCampaignTypes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedCampaignTypes})
}

func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedCategories})
}
