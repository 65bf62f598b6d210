package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MaterialHandler struct {
	materialService *services.MaterialService
}

func NewMaterialHandler() *MaterialHandler {
	return &MaterialHandler{materialService: services.NewMaterialService()}
}

func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.materialService.List(c.Query("subject"))
	if err != nil {
		logging.L().Error("material list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list materials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

func (h *MaterialHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}

	material, err := h.materialService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		logging.L().Error("material lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load material"})
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req models.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	material, err := h.materialService.Create(&req)
	if err != nil {
		logging.L().Error("material creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create material"})
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}

	var req models.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	material, err := h.materialService.Update(uint(id), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		logging.L().Error("material update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update material"})
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return
	}

	if err := h.materialService.Delete(uint(id)); err != nil {
		logging.L().Error("material delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete material"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
