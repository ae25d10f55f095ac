package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/config"
	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/upload"
	"github.com/mhndckngyn/askdev-api/internal/verify"
)

type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	log      *slog.Logger
	verifier verify.Verifier
	uploader upload.Uploader
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *slog.Logger, verifier verify.Verifier, uploader upload.Uploader) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, log: log, verifier: verifier, uploader: uploader}
}

func (h *AuthHandler) signToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(h.cfg.JWTExpiry).Unix(),
	})
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"bio":        user.Bio,
		"avatar":     user.Avatar,
		"verified":   user.Verified,
		"is_admin":   user.IsAdmin,
		"created_at": user.CreatedAt,
	}
}

// Register creates an unverified account and sends a confirmation code to
// the given email.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-input"})
		return
	}

	var existing models.User
	if err := h.db.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.username-or-email-taken"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
	}
	if err := h.db.Create(&user).Error; err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.verifier.Start(c.Request.Context(), user.Email); err != nil {
		h.log.Error("failed to send verification code", "email", user.Email, "err", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "auth.verification-sent",
		"user":    userJSON(&user),
	})
}

// VerifyEmail confirms the code sent at registration, marks the account
// verified and returns a session token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-input"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "auth.user-not-found"})
		return
	}

	if err := h.verifier.Check(c.Request.Context(), input.Email, input.Code); err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.db.Model(&user).Update("verified", true).Error; err != nil {
		respondError(c, h.log, err)
		return
	}
	user.Verified = true

	token, err := h.signToken(&user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(&user)})
}

// Login authenticates by username and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-input"})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth.invalid-credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth.invalid-credentials"})
		return
	}
	if !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "auth.email-not-verified"})
		return
	}

	token, err := h.signToken(&user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(&user)})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "auth.user-not-found"})
		return
	}

	c.JSON(http.StatusOK, userJSON(&user))
}

// RequestPasswordReset sends a reset code to the account email. The
// response is the same whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-input"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err == nil {
		if err := h.verifier.Start(c.Request.Context(), user.Email); err != nil {
			h.log.Error("failed to send reset code", "email", user.Email, "err", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "auth.reset-code-sent"})
}

// ConfirmPasswordReset trades a valid reset code for a one-time reset
// token.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-input"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verify.invalid-code"})
		return
	}
	if err := h.verifier.Check(c.Request.Context(), input.Email, input.Code); err != nil {
		respondError(c, h.log, err)
		return
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(h.cfg.ResetTokenTTL),
	}
	if err := h.db.Create(&reset).Error; err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset_token": reset.Token})
}

// ResetPassword consumes the reset token and sets the new password. The
// password update and the token deletion commit together, so a token can
// never be replayed after a successful reset.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-input"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var reset models.PasswordReset
		if err := tx.Where("token = ? AND expires_at > ?", input.Token, time.Now()).First(&reset).Error; err != nil {
			return errors.New("invalid token")
		}
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", reset.UserID).Delete(&models.PasswordReset{}).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "auth.invalid-reset-token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "auth.password-updated"})
}

// UpdateProfile changes the caller's bio and, when a file is attached,
// the avatar.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "auth.user-not-found"})
		return
	}

	updates := map[string]interface{}{}
	if bio, exists := c.GetPostForm("bio"); exists {
		updates["bio"] = bio
	}

	files, opened, err := formFiles(c, "avatar")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer closeAll(opened)

	if len(files) > 0 {
		// avatar upload is best-effort, a failure keeps the old image
		urls, err := h.uploader.Upload(c.Request.Context(), files[:1])
		if err != nil {
			h.log.Error("avatar upload failed", "user_id", userID, "err", err)
		} else if len(urls) > 0 {
			updates["avatar"] = urls[0]
		}
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			respondError(c, h.log, err)
			return
		}
	}

	if err := h.db.First(&user, userID).Error; err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(&user))
}
