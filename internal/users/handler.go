package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/shared/server/middleware"
	"lexibridge-backend/internal/shared/server/respond"
)

// DocumentCounter reports how many documents a user owns.
type DocumentCounter interface {
	CountByOwner(ctx context.Context, userID string) (int, error)
}

// ResponseCounter reports how many AI responses a user has received.
type ResponseCounter interface {
	CountByOwner(ctx context.Context, userID string) (int, error)
}

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc   *Service
	Docs  DocumentCounter
	Chats ResponseCounter
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs DocumentCounter, chats ResponseCounter) *Handler {
	return &Handler{Svc: svc, Docs: docs, Chats: chats}
}

// RegisterPublicRoutes attaches the unauthenticated account routes.
func (h *Handler) RegisterPublicRoutes(r gin.IRoutes) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
}

// RegisterProtectedRoutes attaches routes behind the auth middleware.
func (h *Handler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.GET("/profile", h.profile)
	r.GET("/check-auth", h.checkAuth)
}

type registerRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "username, email and password are required")
		return
	}

	user, token, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrShortUsername):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusBadRequest, respond.CodeConflict, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to register user")
		}
		return
	}

	respond.OK(c, gin.H{
		"success":      true,
		"message":      "Registration successful",
		"user":         toUserResponse(user),
		"access_token": token,
		"token_type":   "bearer",
	})
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body")
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to log in")
		}
		return
	}

	respond.OK(c, gin.H{
		"success":      true,
		"message":      "Login successful",
		"user":         toUserResponse(user),
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) profile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, "Invalid token")
		return
	}

	// Stats are display-only; count failures degrade to zero.
	docCount, err := h.Docs.CountByOwner(c.Request.Context(), userID)
	if err != nil {
		docCount = 0
	}
	chatCount, err := h.Chats.CountByOwner(c.Request.Context(), userID)
	if err != nil {
		chatCount = 0
	}

	respond.OK(c, gin.H{
		"success": true,
		"profile": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"fullName":  user.FullName,
			"createdAt": user.CreatedAt,
			"stats": gin.H{
				"totalDocuments": docCount,
				"totalChats":     chatCount,
			},
		},
	})
}

func (h *Handler) checkAuth(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	respond.OK(c, gin.H{
		"success":       true,
		"authenticated": true,
		"user": gin.H{
			"id":       ident.UserID,
			"username": ident.Username,
			"email":    ident.Email,
			"fullName": ident.FullName,
		},
	})
}

func toUserResponse(user User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"fullName": user.FullName,
	}
}
