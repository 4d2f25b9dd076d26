package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/attendance_bot/internal/models"
)

type JournalController struct {
	DB *gorm.DB
}

type journalRow struct {
	StudentID uint   `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SubjectID uint   `json:"subject_id"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// ListJournal returns committed attendance, optionally filtered by group,
// subject and date range.
func (j *JournalController) ListJournal(c *gin.Context) {
	q := j.DB.Table("journal_entries AS je").
		Select("je.student_id, st.first_name, st.last_name, je.subject_id, su.name AS subject, to_char(je.date, 'YYYY-MM-DD') AS date, je.status").
		Joins("JOIN students st ON st.id = je.student_id").
		Joins("JOIN subjects su ON su.id = je.subject_id").
		Order("je.date DESC, st.last_name, st.first_name")

	if raw := c.Query("group_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
			return
		}
		q = q.Where("st.group_id = ?", uint(id))
	}
	if raw := c.Query("subject_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject_id"})
			return
		}
		q = q.Where("je.subject_id = ?", uint(id))
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("je.date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("je.date <= ?", to)
	}

	var rows []journalRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type explanationRow struct {
	StudentID uint   `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Text      string `json:"text"`
}

// ListExplanations returns a group's absence explanations, newest first.
func (j *JournalController) ListExplanations(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Query("group_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
		return
	}

	var rows []explanationRow
	err = j.DB.Table("explanations AS e").
		Select("e.student_id, st.first_name, st.last_name, su.name AS subject, to_char(e.date, 'YYYY-MM-DD') AS date, e.text").
		Joins("JOIN students st ON st.id = e.student_id").
		Joins("JOIN subjects su ON su.id = e.subject_id").
		Where("st.group_id = ?", uint(groupID)).
		Order("e.date DESC, e.id DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type setGradeRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
	SubjectID uint `json:"subject_id" binding:"required"`
	Grade     *int `json:"grade" binding:"required"`
}

// SetGrade upserts an attestation grade for (student, subject).
func (j *JournalController) SetGrade(c *gin.Context) {
	var req setGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Grade < 0 || *req.Grade > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grade must be between 0 and 100"})
		return
	}

	att := models.Attestation{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Grade:     *req.Grade,
	}
	err := j.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "subject_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade", "updated_at"}),
	}).Create(&att).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "grade recorded"})
}

type gradeRow struct {
	Subject string `json:"subject"`
	Grade   int    `json:"grade"`
}

func (j *JournalController) ListGrades(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var rows []gradeRow
	err = j.DB.Table("attestations AS a").
		Select("su.name AS subject, a.grade").
		Joins("JOIN subjects su ON su.id = a.subject_id").
		Where("a.student_id = ?", uint(studentID)).
		Order("su.name").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
