package api

import (
	"errors"
	"net/http"

	reqdto "cabin-reserve/internal/handler/dto/request"
	resdto "cabin-reserve/internal/handler/dto/response"
	"cabin-reserve/internal/handler/httperr"
	"cabin-reserve/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WaitingListHandler struct {
	commands commands.WaitingListCommands
}

func NewWaitingListHandler(cmds commands.WaitingListCommands) *WaitingListHandler {
	return &WaitingListHandler{
		commands: cmds,
	}
}

// @Summary Notify next waiting-list candidate
// @Description Offer a freed slot to the best-placed pending entry (admin only)
// @Tags waiting-list
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.NotifyNextRequest true "Freed slot"
// @Success 200 {object} resdto.NotifyResponse
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /admin/waiting-list/notify [post]
func (h *WaitingListHandler) NotifyNext(c *gin.Context) {
	var req reqdto.NotifyNextRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	result, err := h.commands.NotifyNext(c.Request.Context(), req.CabinID, start, end, req.WindowHours)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot range",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, resdto.FromNotifyResult(result))
}

// @Summary Claim a notified slot
// @Description Redeem a notify token before its window closes
// @Tags waiting-list
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ClaimRequest true "Claim request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /waiting-list/claim [post]
func (h *WaitingListHandler) Claim(c *gin.Context) {
	var req reqdto.ClaimRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.Claim(c.Request.Context(), req.Token, req.Guests)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid claim request",
			})
		case errors.Is(err, commands.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Token not found or no longer valid",
			})
		case errors.Is(err, commands.ErrSlotNoLongerAvailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is no longer available",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}
