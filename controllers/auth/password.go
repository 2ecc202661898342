package authControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/mailer"
	"github.com/Fouad192/Elagi-Backend/models"
)

// POST /forgot-password
//
// Unlike registration, the reset OTP lives on the user row itself rather
// than in the cache, so it has no expiry until it is consumed.
func ForgotPasswordHandler(db *gorm.DB, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
			return
		}

		otp := generateOTP()
		if err := db.Model(&user).Update("otp", otp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store OTP"})
			return
		}

		if err := mail.Send(user.Email, "Password Reset Code", mailer.OTPBody(otp)); err != nil {
			log.Printf("forgot-password: failed to send OTP to %s: %v", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email"})
	}
}

// POST /reset-password
//
// The lookup is scoped by (email, otp). Matching on the OTP value alone
// would let an OTP collision reset another user's password.
func ResetPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email       string `json:"email" binding:"required,email"`
			OTP         string `json:"otp" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email, OTP and a password of at least 8 characters are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ? AND otp = ?", req.Email, req.OTP).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}

		updates := map[string]interface{}{"password": string(hash), "otp": nil}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
	}
}
