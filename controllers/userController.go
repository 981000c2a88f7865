package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-restaurant-pos/cosmic"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SignUp registers a staff account in the store. Emails are unique.
func SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&user); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		_, err := store.GetUserByEmail(ctx, *user.Email)
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		if !errors.Is(err, cosmic.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for the email"})
			return
		}

		password := HashPassword(*user.Password)
		user.Password = &password

		created, err := store.InsertUser(ctx, user)
		if err != nil {
			log.Errorf("error creating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*created.Email, *created.Name, created.ID, *created.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		created.Token = &token
		created.RefreshToken = &refreshToken
		created.Password = nil

		c.JSON(http.StatusOK, created)
	}
}

// Login checks the credentials against the stored account and issues the
// token pair.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if user.Email == nil || user.Password == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		foundUser, err := store.GetUserByEmail(ctx, *user.Email)
		if errors.Is(err, cosmic.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching user"})
			return
		}

		passwordIsValid, msg := VerifyPassword(*user.Password, *foundUser.Password)
		if !passwordIsValid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.ID, *foundUser.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		foundUser.Token = &token
		foundUser.RefreshToken = &refreshToken
		foundUser.Password = nil

		c.JSON(http.StatusOK, foundUser)
	}
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword))
	if err != nil {
		return false, "email or password is incorrect"
	}
	return true, ""
}
