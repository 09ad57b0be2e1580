package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	config "github.com/tobiasmeier/timeslot_booking/configs"
	"github.com/tobiasmeier/timeslot_booking/database"
	"github.com/tobiasmeier/timeslot_booking/models"
	"github.com/tobiasmeier/timeslot_booking/notifications"
	"github.com/tobiasmeier/timeslot_booking/tokens"
)

var validate = validator.New()

func jwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPairResponse struct {
	Token        tokens.Minted `json:"token"`
	RefreshToken tokens.Minted `json:"refresh_token"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	now := time.Now()
	authToken, err := tokens.AuthToken(jwtSecret(), user.Username, user.Role, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	refreshToken, err := tokens.RefreshToken(jwtSecret(), user.Username, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(TokenPairResponse{Token: authToken, RefreshToken: refreshToken})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	claims, err := tokens.Verify(jwtSecret(), tokens.TypeRefresh, req.RefreshToken)
	if err != nil {
		log.Printf("Refresh token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	username, _ := claims["username"].(string)

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	authToken, err := tokens.AuthToken(jwtSecret(), user.Username, user.Role, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": authToken})
}

type SignupRequest struct {
	Token    string `json:"token" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup redeems an invite token. The account's email is taken from the
// token, never from the request body.
func Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	claims, err := tokens.Verify(jwtSecret(), tokens.TypeSignup, req.Token)
	if err != nil {
		log.Printf("Signup token rejected: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	email, _ := claims["email"].(string)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	newUser := models.User{
		Username: req.Username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username or email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       newUser.ID,
		"username": newUser.Username,
		"email":    newUser.Email,
	})
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InviteUser mails a signup link to a new administrator.
func InviteUser(c *fiber.Ctx) error {
	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	minted, err := tokens.SignupToken(jwtSecret(), req.Email, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create invite token"})
	}

	signupLink := fmt.Sprintf("%s/signup?token=%s", config.Config("FRONTEND_URL"), minted.Token)
	go notifications.SendSignupInvite(req.Email, signupLink)

	return c.JSON(fiber.Map{"message": "Invitation sent.", "expires_at": minted.ExpiresAt})
}
