package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TemplateHandler handles SMS template administration.
type TemplateHandler struct {
	DB *gorm.DB
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{DB: db}
}

// GetTemplates handles fetching all SMS templates.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	var templates []models.SMSTemplate
	if err := h.DB.Order("type asc").Find(&templates).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch SMS templates: "+err.Error())
		return
	}

	utils.Success(c, "SMS templates fetched successfully", templates)
}

// UpsertTemplateRequest represents the request body for editing the
// active template of a type.
type UpsertTemplateRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpsertTemplate handles writing the single active template for a
// type (admin). The upsert is keyed on the type so duplicates cannot
// accumulate.
func (h *TemplateHandler) UpsertTemplate(c *gin.Context) {
	templateType := models.TemplateType(c.Param("type"))
	if !models.ValidTemplateType(templateType) {
		utils.BadRequest(c, "Unknown template type: "+string(templateType))
		return
	}

	var req UpsertTemplateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var template models.SMSTemplate
	err := h.DB.Where("type = ?", templateType).First(&template).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		template = models.SMSTemplate{Type: templateType, Content: req.Content}
		if err := h.DB.Create(&template).Error; err != nil {
			utils.InternalServerError(c, "Failed to create SMS template: "+err.Error())
			return
		}
	case err != nil:
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	default:
		template.Content = req.Content
		if err := h.DB.Save(&template).Error; err != nil {
			utils.InternalServerError(c, "Failed to update SMS template: "+err.Error())
			return
		}
	}

	utils.Success(c, "SMS template saved successfully", template)
}
