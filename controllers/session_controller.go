package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/models"
	"github.com/PedroLucas003/virada-brewery-store/session"
)

type SessionController struct {
	Sessions *session.Manager
}

func NewSessionController(sessions *session.Manager) *SessionController {
	return &SessionController{Sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Current returns the session state the UI gates on.
func (sc *SessionController) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":             sc.Sessions.CurrentUser(),
		"is_authenticated": sc.Sessions.IsAuthenticated(),
		"loading":          sc.Sessions.Loading(),
	})
}

// Login authenticates the customer.
func (sc *SessionController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("Email and password are required"))
		return
	}

	user, err := sc.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register creates an account and signs the customer in.
func (sc *SessionController) Register(c *gin.Context) {
	var input session.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(apperrors.Validation("Invalid registration payload"))
		return
	}

	user, err := sc.Sessions.Register(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Logout ends the session.
func (sc *SessionController) Logout(c *gin.Context) {
	if err := sc.Sessions.Logout(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// UpdateProfile patches the current customer's profile.
func (sc *SessionController) UpdateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		_ = c.Error(apperrors.Validation("Invalid profile payload"))
		return
	}

	user, err := sc.Sessions.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
