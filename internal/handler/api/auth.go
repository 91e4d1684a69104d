package api

import (
	"net/http"

	reqdto "cabin-reserve/internal/handler/dto/request"
	resdto "cabin-reserve/internal/handler/dto/response"
	"cabin-reserve/internal/handler/httperr"
	"cabin-reserve/internal/handler/middleware"
	"cabin-reserve/internal/pkg/config"
	"cabin-reserve/internal/pkg/jwt"
	"cabin-reserve/internal/pkg/password"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// adminUserID is the fixed subject for the operator account. Admin identity
// is config-backed; there is no user table behind it.
var adminUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type AuthHandler struct {
	admin      config.AdminConfig
	jwtService *jwt.Service
}

func NewAuthHandler(cfg config.Config, jwtService *jwt.Service) *AuthHandler {
	return &AuthHandler{
		admin:      cfg.Admin,
		jwtService: jwtService,
	}
}

// @Summary Operator login
// @Description Authenticate the operator account and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if req.Email != h.admin.Email {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
		return
	}
	if err := password.Verify(h.admin.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
		return
	}

	token, err := h.jwtService.GenerateToken(adminUserID, middleware.RoleAdmin)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{Token: token})
}
