package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler owns the authenticated user routes.
type Handler struct {
	DB *gorm.DB
}

// UserSummary is the projection returned by the list endpoint.
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}

// GetUser returns every user matching the username header. Usernames are not
// unique, so the response is a list.
func (h *Handler) GetUser(c *gin.Context) {
	username := c.GetHeader("username")

	var matches []User
	if err := h.DB.Find(&matches, "username = ?", username).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if len(matches) == 0 {
		c.String(http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetUsers lists all users restricted to {username, email, admin}.
func (h *Handler) GetUsers(c *gin.Context) {
	var summaries []UserSummary
	if err := h.DB.Model(&User{}).Select("username", "email", "admin").Find(&summaries).Error; err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// UpdateUser sets the role flags and increments points for the user in the
// id header. Matching zero rows is not an error, mirroring the original
// update-one semantics.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id.")
		return
	}

	points, _ := strconv.Atoi(c.GetHeader("points"))
	updates := map[string]interface{}{
		"points": gorm.Expr("points + ?", points),
	}
	// absent flag headers leave the stored flags untouched
	if v := c.GetHeader("crewLeader"); v != "" {
		crewLeader, _ := strconv.ParseBool(v)
		updates["crew_leader"] = crewLeader
	}
	if v := c.GetHeader("admin"); v != "" {
		admin, _ := strconv.ParseBool(v)
		updates["admin"] = admin
	}

	res := h.DB.Model(&User{}).Where("id = ?", uint(id)).Updates(updates)
	if res.Error != nil {
		c.String(http.StatusNotFound, "Could not update user: "+res.Error.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}
