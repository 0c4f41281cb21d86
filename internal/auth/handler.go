package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/users"
)

// Handler owns the unauthenticated routes: register and sign-in.
type Handler struct {
	DB     *gorm.DB
	Tokens *TokenService
}

type registerDTO struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Birthday    string `json:"birthday"`
	PhoneNumber string `json:"phoneNumber"`
	Description string `json:"description"`
}

type signInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// Register creates a user and returns a signed token. The email pre-check
// keeps the historical 401 for duplicates; the unique index on email backs
// it atomically, so a concurrent duplicate fails at insert with the same 401.
func (h *Handler) Register(c *gin.Context) {
	var body registerDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.String(http.StatusBadRequest, "Could not parse request: "+err.Error())
		return
	}

	var existing users.User
	if err := h.DB.First(&existing, "email = ?", body.Email).Error; err == nil {
		c.String(http.StatusUnauthorized, "Invalid email.")
		return
	}

	hashed, err := HashPassword(body.Password)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to hash password.")
		return
	}

	user := users.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: hashed,
		Birthday:     body.Birthday,
		PhoneNumber:  body.PhoneNumber,
		Description:  body.Description,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.String(http.StatusUnauthorized, "Invalid email.")
			return
		}
		c.String(http.StatusBadRequest, "Could not register user: "+err.Error())
		return
	}

	tok, err := h.Tokens.Generate(&user)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, tok)
}

// SignIn verifies credentials and returns a fresh signed token.
func (h *Handler) SignIn(c *gin.Context) {
	var body signInDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.String(http.StatusBadRequest, "Could not parse request: "+err.Error())
		return
	}

	var user users.User
	if err := h.DB.First(&user, "email = ?", body.Email).Error; err != nil {
		c.String(http.StatusUnauthorized, "Invalid email.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		c.String(http.StatusUnauthorized, "Invalid password.")
		return
	}

	tok, err := h.Tokens.Generate(&user)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, tok)
}
