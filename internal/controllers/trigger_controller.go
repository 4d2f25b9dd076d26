package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/attendance_bot/internal/attendance"
	"github.com/example/attendance_bot/internal/schedule"
)

// TriggerController exposes the trigger entry points for operators: re-running
// the daily planning pass and firing a notify or collect manually, e.g. after
// a schedule correction.
type TriggerController struct {
	Planner    *attendance.Planner
	Dispatcher *attendance.Dispatcher
	Assembler  *attendance.Assembler
}

func (t *TriggerController) Plan(c *gin.Context) {
	t.Planner.PlanToday()
	c.JSON(http.StatusOK, gin.H{"message": "planning pass executed"})
}

type occurrenceRequest struct {
	GroupID   uint      `json:"group_id" binding:"required"`
	SubjectID uint      `json:"subject_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	Kind      string    `json:"kind"`
}

func (r occurrenceRequest) occurrence() schedule.Occurrence {
	return schedule.Occurrence{
		GroupID:   r.GroupID,
		SubjectID: r.SubjectID,
		Start:     r.StartTime,
		Kind:      r.Kind,
	}
}

func (t *TriggerController) Notify(c *gin.Context) {
	var req occurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.Dispatcher.Notify(req.occurrence())
	c.JSON(http.StatusOK, gin.H{"message": "notify dispatched"})
}

func (t *TriggerController) Collect(c *gin.Context) {
	var req occurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.Assembler.Collect(req.occurrence())
	c.JSON(http.StatusOK, gin.H{"message": "collect dispatched"})
}
