package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pulse-api/models"
	"pulse-api/services"
	"pulse-api/utils"
)

type AuthController struct {
	db        *gorm.DB
	logger    *zap.Logger
	jwtSecret string
	mailer    *services.Mailer
}

func NewAuthController(db *gorm.DB, logger *zap.Logger, jwtSecret string, mailer *services.Mailer) *AuthController {
	return &AuthController{
		db:        db,
		logger:    logger,
		jwtSecret: jwtSecret,
		mailer:    mailer,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	Username string `json:"username" binding:"omitempty,min=3,max=20,alphanum_underscore"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=4"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	var existingUser models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Email already registered")
		return
	}

	username := req.Username
	if username == "" {
		username = ac.generateUniqueUsername(req.Name)
	} else {
		if err := ac.db.Where("username = ?", username).First(&existingUser).Error; err == nil {
			utils.SendError(c, http.StatusConflict, "Username already taken")
			return
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		ID:       utils.NewID(),
		Name:     req.Name,
		Username: username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := ac.db.Create(&user).Error; err != nil {
		ac.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if _, err := ac.mailer.SendVerificationEmail(user.Email, user.Name); err != nil {
		ac.logger.Warn("failed to send verification email", zap.String("user", user.ID), zap.Error(err))
	}

	user.Password = ""
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful! Check your email for the verification code.",
		"user":    user,
	})
}

func (ac *AuthController) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if user.EmailVerified {
		utils.SendError(c, http.StatusBadRequest, "Email already verified")
		return
	}

	if !ac.mailer.VerifyCode(req.Email, req.Code) {
		utils.SendError(c, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}

	if err := ac.db.Model(&user).UpdateColumn("email_verified", true).Error; err != nil {
		ac.logger.Error("failed to mark email verified", zap.String("user", user.ID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindingError(c, err)
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.EmailVerified {
		utils.SendError(c, http.StatusForbidden, "Email not verified")
		return
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		ac.logger.Error("failed to generate token", zap.String("user", user.ID), zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	// Stateless JWT; logout is handled client-side.
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (ac *AuthController) generateJWT(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}

func (ac *AuthController) generateUniqueUsername(name string) string {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return -1
		}
	}, base)
	if len(base) < 3 {
		base = "user_" + base
	}
	if len(base) > 15 {
		base = base[:15]
	}

	username := base
	for i := 1; ; i++ {
		var existing models.User
		if err := ac.db.Where("username = ?", username).First(&existing).Error; err != nil {
			return username
		}
		if i > 9 {
			return base + "_" + utils.NewID()[:4]
		}
		username = fmt.Sprintf("%s_%d", base, i)
	}
}
