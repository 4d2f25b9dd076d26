package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/attendance_bot/internal/models"
)

type GroupController struct {
	DB *gorm.DB
}

type createGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

func (g *GroupController) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group := models.Group{Name: req.Name}
	if err := g.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (g *GroupController) ListGroups(c *gin.Context) {
	var groups []models.Group
	if err := g.DB.Order("name").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, groups)
}

type createStudentRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	GroupID   uint   `json:"group_id" binding:"required"`
	ChatID    int64  `json:"chat_id" binding:"required"`
}

func (g *GroupController) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	student := models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		GroupID:   req.GroupID,
		ChatID:    req.ChatID,
	}
	if err := g.DB.Create(&student).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (g *GroupController) ListStudents(c *gin.Context) {
	q := g.DB.Order("last_name, first_name")
	if raw := c.Query("group_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
			return
		}
		q = q.Where("group_id = ?", uint(id))
	}
	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, students)
}

func (g *GroupController) DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := g.DB.Delete(&models.Student{}, uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type assignRepresentativeRequest struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// AssignRepresentative delegates the primary or deputy reviewer role for a
// group. Re-assignment replaces the previous holder of that role.
func (g *GroupController) AssignRepresentative(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	var req assignRepresentativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidRepRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be primary or deputy"})
		return
	}

	// The chat must belong to an enrolled member of this group.
	var student models.Student
	if err := g.DB.Where("chat_id = ? AND group_id = ?", req.ChatID, uint(groupID)).First(&student).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "no member of this group has that chat id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rep := models.Representative{
		ChatID:  req.ChatID,
		GroupID: uint(groupID),
		Role:    req.Role,
	}
	err = g.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "role"}},
		DoUpdates: clause.AssignmentColumns([]string{"chat_id", "updated_at"}),
	}).Create(&rep).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "representative assigned", "role": req.Role})
}

func (g *GroupController) ListRepresentatives(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	var reps []models.Representative
	if err := g.DB.Where("group_id = ?", uint(groupID)).Find(&reps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reps)
}

func (g *GroupController) RemoveRepresentative(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	role := c.Param("role")
	if !models.IsValidRepRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be primary or deputy"})
		return
	}
	res := g.DB.Where("group_id = ? AND role = ?", uint(groupID), role).Delete(&models.Representative{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such representative"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "representative removed"})
}
