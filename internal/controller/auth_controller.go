package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/service"
	"tropical-cargo-api/internal/token"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthController struct {
	Users  *service.UserService
	Tokens *token.Manager
	logger *slog.Logger
}

func NewAuthController(users *service.UserService, tokens *token.Manager, logger *slog.Logger) *AuthController {
	return &AuthController{Users: users, Tokens: tokens, logger: logger}
}

// POST /register
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "errors": validationDetails(err)})
		return
	}

	user, err := ctl.Users.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
			return
		}
		if errors.Is(err, service.ErrPartnerIDTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Partner id already registered"})
			return
		}
		ctl.logger.Error("Failed to register user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": user.ID.Hex()})
}

// POST /auth — credentials sign-in. Fails closed: every rejection looks the
// same to the caller.
func (ctl *AuthController) SignIn(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	user, err := ctl.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	signed, err := ctl.Tokens.Issue(user.ID.Hex())
	if err != nil {
		ctl.logger.Error("Failed to issue session token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   signed,
		"user": dto.SessionUser{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// GET /auth/session — requires the auth middleware.
func (ctl *AuthController) Session(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid session"})
		return
	}

	user, err := ctl.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid session"})
			return
		}
		ctl.logger.Error("Failed to load session user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}
