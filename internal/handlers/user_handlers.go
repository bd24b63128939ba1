package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rsnteam/telemart-golang/internal/logger"
	"github.com/rsnteam/telemart-golang/internal/models"
	"github.com/rsnteam/telemart-golang/internal/session"
	"github.com/rsnteam/telemart-golang/internal/store"
)

// --- User Registration ---

// RegisterUserInput holds the registration payload. Separate from
// models.User so clients cannot supply an id or a password hash.
type RegisterUserInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// RegisterUser is the handler for POST /newuser.
func (h *Handlers) RegisterUser(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if input.Username == "" || input.Password == "" || input.Name == "" ||
		input.Email == "" || input.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	// Conflict check, first matching field wins: username > email > phone.
	existing, err := h.Store.FindUserByAny(c.Request.Context(), input.Username, input.Email, input.PhoneNumber)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Log.Errorw("registration conflict check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if existing != nil {
		conflictField := "Phone number"
		switch {
		case existing.Username == input.Username:
			conflictField = "Username"
		case existing.Email == input.Email:
			conflictField = "Email"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": conflictField + " already exists"})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		logger.Log.Errorw("password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: password.Hash,
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
	}
	if err := h.Store.CreateUser(c.Request.Context(), user); err != nil {
		// A concurrent registration can slip past the check above; the
		// store's uniqueness constraint is the authoritative guard.
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		logger.Log.Errorw("user creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// --- Login / Logout ---

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login is the handler for POST /login. On success it creates a session
// record and sets the signed connect.sid cookie.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)
	if input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
		return
	}

	user, err := h.Store.FindUserByUsername(c.Request.Context(), input.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same body as a wrong password, so usernames cannot be
			// enumerated through the login route.
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		logger.Log.Errorw("login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		logger.Log.Errorw("password verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	ttl := h.Cfg.SessionTTL()
	sid, err := h.Sessions.Create(c.Request.Context(), user.ID, ttl)
	if err != nil {
		logger.Log.Errorw("session creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := session.SignToken(sid, h.Cfg.SessionSecret, ttl)
	if err != nil {
		logger.Log.Errorw("session token signing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.SetSameSite(h.Cfg.SameSite())
	c.SetCookie(session.CookieName, token, h.Cfg.SessionMaxAge, "/", "", h.Cfg.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"userId":  user.ID,
	})
}

// Logout is the handler for POST /logout. It destroys the session record
// (if one exists) and clears the cookie. Idempotent: logging out without
// an active session still succeeds.
func (h *Handlers) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		if sid, err := session.ParseToken(cookie, h.Cfg.SessionSecret); err == nil {
			if err := h.Sessions.Delete(c.Request.Context(), sid); err != nil {
				logger.Log.Errorw("session delete failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
				return
			}
		}
	}

	c.SetSameSite(h.Cfg.SameSite())
	c.SetCookie(session.CookieName, "", -1, "/", "", h.Cfg.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
