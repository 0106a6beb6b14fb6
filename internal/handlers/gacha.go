package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yumeno/gachapon-api/internal/middleware"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/database/repository"
	"github.com/yumeno/gachapon-api/pkg/gacha"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

// GachaHandler serves catalog CRUD over gacha definitions
type GachaHandler struct {
	gachas *repository.GachaRepository
	logger logging.Logger
}

func NewGachaHandler(gachas *repository.GachaRepository, logger logging.Logger) *GachaHandler {
	return &GachaHandler{gachas: gachas, logger: logger}
}

type gachaItemRequest struct {
	Name   string `json:"name" binding:"required"`
	Rarity string `json:"rarity" binding:"required"`
	ImgSrc string `json:"img_src"`
	Weight int    `json:"weight"`
}

type createGachaRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Thumbnail   string             `json:"thumbnail"`
	RarityRates models.RarityRates `json:"rarity_rates"`
	Items       []gachaItemRequest `json:"items" binding:"required,min=5,dive"`
}

type updateGachaRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Thumbnail   string             `json:"thumbnail"`
	RarityRates models.RarityRates `json:"rarity_rates"`
}

// List handles GET /api/gachas
func (h *GachaHandler) List(c *gin.Context) {
	gachas, err := h.gachas.ListGachas()
	if err != nil {
		h.logger.Error("failed to list gachas", err, map[string]interface{}{"route": "GET /api/gachas"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gachas)
}

// Get handles GET /api/gachas/:id
func (h *GachaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	g, err := h.gachas.GetGachaByID(id)
	if err != nil {
		if errors.Is(err, gacha.ErrGachaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.logger.Error("failed to load gacha", err, map[string]interface{}{"gacha_id": id.String()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, g)
}

// Create handles POST /api/gachas (admin only)
func (h *GachaHandler) Create(c *gin.Context) {
	var req createGachaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, _ := middleware.CurrentUserID(c)

	items := make([]models.GachaItem, 0, len(req.Items))
	for _, item := range req.Items {
		weight := item.Weight
		if weight == 0 {
			weight = 1
		}
		items = append(items, models.GachaItem{
			Name:   item.Name,
			Rarity: item.Rarity,
			ImgSrc: item.ImgSrc,
			Weight: weight,
		})
	}

	rates := req.RarityRates
	if rates == nil {
		rates = models.RarityRates{}
	}

	g := &models.Gacha{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		RarityRates: rates,
		AuthorID:    authorID,
		Items:       items,
	}
	if err := h.gachas.CreateGacha(g); err != nil {
		h.logger.Error("failed to create gacha", err, map[string]interface{}{"route": "POST /api/gachas"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": g.ID})
}

// Update handles PUT /api/gachas/:id (admin only)
func (h *GachaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	var req updateGachaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rates := req.RarityRates
	if rates == nil {
		rates = models.RarityRates{}
	}

	if err := h.gachas.UpdateGacha(id, &models.Gacha{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		RarityRates: rates,
	}); err != nil {
		h.logger.Error("failed to update gacha", err, map[string]interface{}{"gacha_id": id.String()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete handles DELETE /api/gachas/:id (admin only)
func (h *GachaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	if err := h.gachas.DeleteGacha(id); err != nil {
		h.logger.Error("failed to delete gacha", err, map[string]interface{}{"gacha_id": id.String()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.Status(http.StatusNoContent)
}
