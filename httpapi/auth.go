package httpapi

import (
	"net/http"

	"report-backend/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandlers struct {
	auth  *auth.Service
	users UserStore
}

func NewAuthHandlers(authService *auth.Service, users UserStore) *AuthHandlers {
	return &AuthHandlers{auth: authService, users: users}
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	user, token, err := h.auth.Register(
		c.Request.Context(),
		body.Name,
		body.Email,
		body.Password,
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *AuthHandlers) Me(c *gin.Context) {
	identity := callerIdentity(c)

	user, err := h.users.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, user)
}
