package handlers

import (
	"net/http"
	"strconv"

	"userdirectory/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *usecase.UserUseCase
}

func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{users: uc}
}

type userReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		writeError(c, err, "Failed to add user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"createdAt": user.CreatedAt,
		"message":   "User added successfully",
	})
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.users.Update(c.Request.Context(), id, req.Name, req.Email, req.Phone); err != nil {
		writeError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GET /api/stats
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to get statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/health
func (h *UserHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.users.Health(c.Request.Context()))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return id, true
}
