package controllers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet_console/internal/config"
	"fleet_console/internal/middleware"
	"fleet_console/internal/models"
)

type signupInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	LicenseNumber string `json:"license_number"`
}

// loginCodeTTL bounds the window between /auth/login and /auth/verify.
const loginCodeTTL = 15 * time.Minute

func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Role = role

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Phone:    input.Phone,
		Role:     input.Role,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	if err := createDriverProfile(tx, &user, input); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// LoginUser checks credentials and issues a short-lived verification code.
// The token itself is only handed out by VerifyLoginCode, mirroring the
// console's two-step login. With no mail delivery in scope, the code is
// returned in the response body.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	code, err := generateLoginCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate verification code"})
		return
	}
	expires := time.Now().Add(loginCodeTTL)
	user.LoginCode = code
	user.LoginCodeExpiresAt = &expires
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "verification code issued",
		"code":    code,
	})
}

// VerifyLoginCode exchanges a pending verification code for a JWT.
func VerifyLoginCode(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", body.Email).Preload("Driver").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if user.LoginCode == "" || user.LoginCode != body.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid verification code"})
		return
	}
	if user.LoginCodeExpiresAt == nil || time.Now().After(*user.LoginCodeExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "verification code expired"})
		return
	}

	// One-shot code.
	user.LoginCode = ""
	user.LoginCodeExpiresAt = nil
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear verification code"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = "admin"
	}
	switch role {
	case "admin", "driver":
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// createDriverProfile adds the catalog entry for users signing up as drivers.
func createDriverProfile(tx *gorm.DB, user *models.User, input signupInput) error {
	if user.Role != "driver" {
		return nil
	}
	if input.LicenseNumber == "" {
		return errors.New("license_number is required for driver role")
	}

	driver := models.Driver{
		UserID:        user.ID,
		Name:          input.Name,
		LicenseNumber: input.LicenseNumber,
		Email:         input.Email,
		Phone:         input.Phone,
		Status:        models.DriverActive,
	}
	if err := tx.Create(&driver).Error; err != nil {
		return err
	}
	user.Driver = &driver
	return tx.Save(user).Error
}

func generateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := n.String()
	for len(code) < 6 {
		code = "0" + code
	}
	return code, nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
	}

	if user.Driver != nil {
		responseUser["driver"] = gin.H{
			"ID":             user.Driver.ID,
			"name":           user.Driver.Name,
			"license_number": user.Driver.LicenseNumber,
			"status":         user.Driver.Status,
		}
	}
	return responseUser
}
