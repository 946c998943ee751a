package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sweetshop/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Route setup
func AuthRoutes(r *gin.Engine, users UserStore) {
	r.POST("/api/auth/register", func(c *gin.Context) {
		handleRegister(c, users)
	})
	r.POST("/api/auth/login", func(c *gin.Context) {
		handleLogin(c, users)
	})
}

// =================== REGISTER ===================

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional, defaults to "user"
}

func handleRegister(c *gin.Context, users UserStore) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" || input.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and password are required"})
		return
	}

	email := strings.ToLower(input.Email)
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}
	if len(input.Username) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be at least 3 characters"})
		return
	}

	role := input.Role
	if role == "" {
		role = RoleUser
	}
	if !ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be 'user' or 'admin'"})
		return
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[auth] password hashing failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	user, err := users.Create(input.Username, email, string(hashedPwd), role)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		case errors.Is(err, ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		default:
			logger.Log.Error(fmt.Sprintf("[auth] register failed: %v", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	// Immediately signed in, same as login.
	respondWithToken(c, http.StatusCreated, user)
}

// =================== LOGIN ===================

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(c *gin.Context, users UserStore) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, found, err := users.FindByEmail(strings.ToLower(input.Email))
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[auth] login lookup failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	respondWithToken(c, http.StatusOK, user)
}

// =================== UTILITY ===================

func respondWithToken(c *gin.Context, status int, user User) {
	token, err := GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[auth] token generation failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(status, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}
