package api

import (
	"errors"
	"net/http"

	"cabin-reserve/internal/domain/reservation"
	reqdto "cabin-reserve/internal/handler/dto/request"
	resdto "cabin-reserve/internal/handler/dto/response"
	"cabin-reserve/internal/handler/httperr"
	"cabin-reserve/internal/usecase/commands"
	"cabin-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewAdminHandler(cmds commands.ReservationCommands, qs queries.ReservationQueries) *AdminHandler {
	return &AdminHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Change reservation status
// @Description Transition a reservation to a new status (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id}/status [patch]
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.ChangeStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.ChangeStatusByAdmin(c.Request.Context(), id, reservation.Status(req.Status)); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown reservation status",
			})
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition not allowed from the reservation's current status",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List reservations
// @Description List reservations across all members, optionally filtered by status (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /admin/reservations [get]
func (h *AdminHandler) ListReservations(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		if !reservation.Status(s).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown reservation status",
			})
			return
		}
		status = &s
	}

	views, err := h.queries.ListAllForAdmin(c.Request.Context(), status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ReservationResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromReservationView(v)
	}
	c.JSON(http.StatusOK, response)
}
