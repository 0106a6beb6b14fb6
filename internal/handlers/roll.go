package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yumeno/gachapon-api/internal/middleware"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/gacha"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

const defaultHistoryLimit = 100

// RollHistory is the read side of the roll record store
type RollHistory interface {
	RollsByUserID(userID uuid.UUID, limit int) ([]models.GachaRoll, error)
}

// RollHandler serves the roll, preview and history endpoints
type RollHandler struct {
	executor *gacha.Executor
	history  RollHistory
	logger   logging.Logger
}

func NewRollHandler(executor *gacha.Executor, history RollHistory, logger logging.Logger) *RollHandler {
	return &RollHandler{executor: executor, history: history, logger: logger}
}

type rollRequest struct {
	Times int `json:"times"`
}

// Roll handles POST /api/gachas/:id/roll. Draws use the flat weighted pool
// and every draw is recorded; the whole batch persists or none of it does.
func (h *RollHandler) Roll(c *gin.Context) {
	gachaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	// absent or malformed body means a single draw
	req := rollRequest{Times: 1}
	if err := c.ShouldBindJSON(&req); err != nil || req.Times == 0 {
		req.Times = 1
	}

	results, err := h.executor.Roll(c.Request.Context(), gachaID, userID, req.Times)
	if err != nil {
		h.writeRollError(c, gachaID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "rolls_saved": true})
}

// Preview handles POST /api/gachas/:id/preview. Draws use the tier-first
// strategy and nothing is persisted.
func (h *RollHandler) Preview(c *gin.Context) {
	gachaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	req := rollRequest{Times: 1}
	if err := c.ShouldBindJSON(&req); err != nil || req.Times == 0 {
		req.Times = 1
	}

	results, err := h.executor.Preview(c.Request.Context(), gachaID, req.Times)
	if err != nil {
		h.writeRollError(c, gachaID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "rolls_saved": false})
}

// History handles GET /api/me/rolls
func (h *RollHandler) History(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	rolls, err := h.history.RollsByUserID(userID, limit)
	if err != nil {
		h.logger.Error("failed to load roll history", err, map[string]interface{}{"user_id": userID.String()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rolls": rolls})
}

func (h *RollHandler) writeRollError(c *gin.Context, gachaID uuid.UUID, err error) {
	switch {
	case errors.Is(err, gacha.ErrGachaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, gacha.ErrNoItemsAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no_items"})
	default:
		h.logger.Error("roll request failed", err, map[string]interface{}{"gacha_id": gachaID.String()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
