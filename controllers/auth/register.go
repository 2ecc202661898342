package authControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	"github.com/Fouad192/Elagi-Backend/mailer"
	"github.com/Fouad192/Elagi-Backend/models"
)

// otpTTL bounds how long a pending registration stays verifiable.
const otpTTL = 10 * time.Minute

var (
	ErrNoPendingRegistration = errors.New("no pending registration for email")
	ErrOTPMismatch           = errors.New("otp does not match")

	fullnameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{11}$`)
)

type RegisterRequest struct {
	FullName             string `json:"fullname"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// validateRegister reports field-level problems the way the API documents
// them, one message per failing field.
func validateRegister(req RegisterRequest) map[string]string {
	errs := make(map[string]string)
	switch {
	case req.FullName == "":
		errs["fullname"] = "Full name is required."
	case !fullnameRe.MatchString(req.FullName):
		errs["fullname"] = "Full name must contain letters and spaces only."
	}
	switch {
	case req.Email == "":
		errs["email"] = "Email is required."
	case !strings.HasSuffix(req.Email, "@gmail.com") || strings.Count(req.Email, "@") != 1:
		errs["email"] = "Email must end with @gmail.com."
	}
	switch {
	case req.Phone == "":
		errs["phone"] = "Phone number is required."
	case !phoneRe.MatchString(req.Phone):
		errs["phone"] = "Phone number must be exactly 11 digits long."
	}
	switch {
	case req.Password == "":
		errs["password"] = "Password is required."
	case len(req.Password) < 8:
		errs["password"] = "Password must be at least 8 characters long."
	case req.Password != req.PasswordConfirmation:
		errs["password"] = "Passwords do not match."
	}
	return errs
}

// StartRegistration stores the pending record and returns the OTP to send.
// No durable user row exists until the OTP is verified. The password is
// hashed before it ever reaches the cache.
func StartRegistration(ctx context.Context, store *cache.Store, req RegisterRequest) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	otp := generateOTP()
	reg := cache.PendingRegistration{
		Name:         req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		OTP:          otp,
	}
	if err := store.PutPendingRegistration(ctx, reg, otpTTL); err != nil {
		return "", err
	}
	return otp, nil
}

// VerifyOTP promotes a pending registration into a durable user.
func VerifyOTP(ctx context.Context, db *gorm.DB, store *cache.Store, email, otp string) error {
	reg, err := store.GetPendingRegistration(ctx, email)
	if errors.Is(err, cache.ErrNotFound) {
		return ErrNoPendingRegistration
	}
	if err != nil {
		return err
	}
	if reg.OTP != otp {
		return ErrOTPMismatch
	}

	user := models.User{
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: reg.PasswordHash,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	return store.DeletePendingRegistration(ctx, email)
}

// POST /register
func RegisterHandler(db *gorm.DB, store *cache.Store, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if errs := validateRegister(req); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "This email address is already in use."}})
			return
		}

		otp, err := StartRegistration(c.Request.Context(), store, req)
		if err != nil {
			log.Printf("register: failed to store pending registration: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
			return
		}

		if err := mail.Send(req.Email, "Email Verification Code", mailer.OTPBody(otp)); err != nil {
			log.Printf("register: failed to send OTP to %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email. Please verify to complete registration."})
	}
}

// POST /resend-otp
func ResendOTPHandler(store *cache.Store, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		reg, err := store.GetPendingRegistration(c.Request.Context(), req.Email)
		if errors.Is(err, cache.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No registration data found for the provided email."})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load registration data"})
			return
		}

		// New OTP, fresh 10-minute window, user data untouched.
		reg.OTP = generateOTP()
		if err := store.PutPendingRegistration(c.Request.Context(), *reg, otpTTL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh OTP"})
			return
		}

		if err := mail.Send(req.Email, "Email Verification Code", mailer.OTPBody(reg.OTP)); err != nil {
			log.Printf("resend-otp: failed to send OTP to %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP has been resent to your email."})
	}
}

// POST /verify-otp
func VerifyOTPHandler(db *gorm.DB, store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
			OTP   string `json:"otp" binding:"required,numeric"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and numeric OTP are required"})
			return
		}

		err := VerifyOTP(c.Request.Context(), db, store, req.Email, req.OTP)
		switch {
		case errors.Is(err, ErrNoPendingRegistration):
			c.JSON(http.StatusBadRequest, gin.H{"message": "OTP verification failed. Data not found."})
		case errors.Is(err, ErrOTPMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP."})
		case err != nil:
			log.Printf("verify-otp: failed for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully. Account created."})
		}
	}
}
