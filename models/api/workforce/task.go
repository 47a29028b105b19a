package workforceapimodels

import (
	"time"

	"github.com/pkg/errors"
	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type TaskData struct {
	Title          string              `json:"title"`
	RequiredSkill  string              `json:"required_skill"`
	EstimatedHours float64             `json:"estimated_hours"`
	Priority       models.TaskPriority `json:"priority"`
}

func (t TaskData) Validate() error {
	if t.Title == "" {
		return errors.New("task title is required")
	}
	if t.RequiredSkill == "" {
		return errors.New("required skill is required")
	}
	if t.EstimatedHours <= 0 {
		return errors.New("estimated hours must be positive")
	}
	return t.Priority.Validate()
}

type TaskView struct {
	TaskData
	ID           string            `json:"id"`
	Status       models.TaskStatus `json:"status"`
	AssignedTo   *string           `json:"assigned_to,omitempty"`
	AssigneeName string            `json:"assignee_name,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func TaskConvert(rec dbmodels.ProcurementTask) TaskView {
	result := TaskView{
		TaskData: TaskData{
			Title:          rec.Title,
			RequiredSkill:  rec.RequiredSkill,
			EstimatedHours: rec.EstimatedHours,
			Priority:       rec.Priority,
		},
		ID:         rec.ID,
		Status:     rec.Status,
		AssignedTo: rec.AssignedTo,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Assignee != nil {
		result.AssigneeName = rec.Assignee.Name
	}
	return result
}
