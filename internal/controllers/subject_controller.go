package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/example/attendance_bot/internal/models"
	"github.com/example/attendance_bot/internal/schedule"
)

type SubjectController struct {
	DB *gorm.DB
}

type createSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *SubjectController) CreateSubject(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subject := models.Subject{Name: req.Name}
	if err := s.DB.Create(&subject).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (s *SubjectController) ListSubjects(c *gin.Context) {
	var subjects []models.Subject
	if err := s.DB.Order("name").Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subjects)
}

type createSlotRequest struct {
	GroupID    uint   `json:"group_id" binding:"required"`
	SubjectID  uint   `json:"subject_id" binding:"required"`
	DayOfWeek  string `json:"day_of_week" binding:"required"`
	WeekParity string `json:"week_parity"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	ClassKind  string `json:"class_kind" binding:"required"`
}

var validWeekdays = map[string]struct{}{
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {},
	"Friday": {}, "Saturday": {}, "Sunday": {},
}

func (s *SubjectController) CreateSlot(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := validWeekdays[req.DayOfWeek]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day_of_week"})
		return
	}
	parity := req.WeekParity
	if parity == "" {
		parity = models.WeekParityAll
	}
	if parity != models.WeekParityAll && parity != models.WeekParityEven && parity != models.WeekParityOdd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_parity must be all, even or odd"})
		return
	}
	if _, _, err := schedule.ParseClock(req.StartTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be HH:MM"})
		return
	}
	if _, _, err := schedule.ParseClock(req.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be HH:MM"})
		return
	}

	slot := models.ScheduleSlot{
		GroupID:    req.GroupID,
		SubjectID:  req.SubjectID,
		DayOfWeek:  req.DayOfWeek,
		WeekParity: parity,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ClassKind:  req.ClassKind,
	}
	if err := s.DB.Create(&slot).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (s *SubjectController) ListSlots(c *gin.Context) {
	q := s.DB.Order("group_id, day_of_week, start_time")
	if raw := c.Query("group_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
			return
		}
		q = q.Where("group_id = ?", uint(id))
	}
	var slots []models.ScheduleSlot
	if err := q.Find(&slots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (s *SubjectController) DeleteSlot(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.DB.Delete(&models.ScheduleSlot{}, uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ScheduleController renders resolved schedules for a group over a period.
type ScheduleController struct {
	Resolver *schedule.Resolver
}

type scheduleDay struct {
	Date    string         `json:"date"`
	Entries []scheduleItem `json:"entries"`
}

type scheduleItem struct {
	SubjectID uint   `json:"subject_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Kind      string `json:"kind"`
}

// GetSchedule returns the resolved occurrences for today, tomorrow or the
// current week (Monday through Sunday).
func (s *ScheduleController) GetSchedule(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Query("group_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
		return
	}

	now := time.Now().In(s.Resolver.Loc)
	var dates []time.Time
	switch c.DefaultQuery("period", "today") {
	case "today":
		dates = []time.Time{now}
	case "tomorrow":
		dates = []time.Time{now.AddDate(0, 0, 1)}
	case "week":
		monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		for i := 0; i < 7; i++ {
			dates = append(dates, monday.AddDate(0, 0, i))
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be today, tomorrow or week"})
		return
	}

	days := make([]scheduleDay, 0, len(dates))
	for _, date := range dates {
		occurrences, err := s.Resolver.GroupSlots(uint(groupID), date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		day := scheduleDay{Date: date.Format("2006-01-02"), Entries: []scheduleItem{}}
		for _, oc := range occurrences {
			day.Entries = append(day.Entries, scheduleItem{
				SubjectID: oc.SubjectID,
				Start:     oc.Start.Format("15:04"),
				End:       oc.End.Format("15:04"),
				Kind:      models.ClassKindLabel(oc.Kind),
			})
		}
		days = append(days, day)
	}
	c.JSON(http.StatusOK, days)
}
