package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	authControllers "github.com/Fouad192/Elagi-Backend/controllers/auth"
	"github.com/Fouad192/Elagi-Backend/mailer"
	"github.com/Fouad192/Elagi-Backend/middleware"
)

// SetupAuthRoutes registers registration, login and account endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, store *cache.Store, mail mailer.Mailer) {
	r.POST("/register", authControllers.RegisterHandler(db, store, mail))
	r.POST("/verify-otp", authControllers.VerifyOTPHandler(db, store))
	r.POST("/resend-otp", authControllers.ResendOTPHandler(store, mail))

	r.POST("/login", authControllers.LoginHandler(db))
	r.POST("/forgot-password", authControllers.ForgotPasswordHandler(db, mail))
	r.POST("/reset-password", authControllers.ResetPasswordHandler(db))

	protected := r.Group("/")
	protected.Use(middleware.ValidateToken(store))
	{
		protected.POST("/validate-token", authControllers.ValidateTokenHandler(db))
		protected.POST("/logout", authControllers.LogoutHandler(store))
		protected.GET("/user", authControllers.CurrentUserHandler(db))
		protected.PUT("/user", authControllers.UpdateProfileHandler(db))
		protected.POST("/user/update", authControllers.UpdateProfileHandler(db))
	}
}
