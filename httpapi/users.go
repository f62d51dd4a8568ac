package httpapi

import (
	"context"
	"net/http"
	"strings"

	"report-backend/orm"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the database the user endpoints need.
type UserStore interface {
	GetUserByID(ctx context.Context, id uint64) (*orm.User, error)
	ListUsers(ctx context.Context, offset, limit int, sortBy string, sortDesc bool) ([]orm.User, int64, error)
	SaveUser(ctx context.Context, user *orm.User) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserHandlers struct {
	users UserStore
}

func NewUserHandlers(users UserStore) *UserHandlers {
	return &UserHandlers{users: users}
}

func (h *UserHandlers) List(c *gin.Context) {
	page := intQuery(c, "page", 0)
	if page < 0 {
		page = 0
	}
	pageSize := intQuery(c, "pageSize", 10)
	if pageSize <= 0 {
		pageSize = 10
	}

	sortDesc := strings.EqualFold(c.Query("sortOrder"), "desc")

	users, total, err := h.users.ListUsers(
		c.Request.Context(),
		page*pageSize,
		pageSize,
		c.Query("sortBy"),
		sortDesc,
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, user)
}

type updateUserBody struct {
	Name       Optional[string] `json:"name"`
	Role       Optional[string] `json:"role"`
	Password   Optional[string] `json:"password"`
	IsArchived Optional[bool]   `json:"isArchived"`
}

func (h *UserHandlers) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body updateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	if body.Name.Set {
		user.Name = body.Name.Value
	}
	if body.Role.Set {
		role, ok := orm.ParseRole(body.Role.Value)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown role"})

			return
		}
		user.Role = role
	}
	if body.Password.Set {
		if body.Password.Value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "password must not be empty"})

			return
		}
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(body.Password.Value),
			bcrypt.DefaultCost,
		)
		if err != nil {
			respondError(c, err)

			return
		}
		user.Password = string(hash)
	}
	if body.IsArchived.Set {
		user.IsArchived = body.IsArchived.Value
	}

	if err := h.users.SaveUser(c.Request.Context(), user); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	// An admin cannot delete their own account.
	if callerIdentity(c).UserID == id {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot delete your own account"})

		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}
