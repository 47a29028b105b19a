package workforceapimodels

import (
	"time"

	"github.com/pkg/errors"
	dbmodels "procure-ops-backend/models/db"
)

type AssignRequest struct {
	TaskID string `json:"task_id"`
}

func (r AssignRequest) Validate() error {
	if r.TaskID == "" {
		return errors.New("task_id is required")
	}
	return nil
}

// AssignmentResult is what the selector returns on a successful match.
type AssignmentResult struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Score        float64 `json:"score"`
	Reasoning    string  `json:"reasoning"`
}

type AssignmentResponse struct {
	EmployeeID string   `json:"employee_id"`
	AssignedTo string   `json:"assigned_to"`
	Score      float64  `json:"score"`
	Reasoning  string   `json:"reasoning"`
	Logs       []string `json:"logs"`
}

type AssignmentLogView struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	TaskTitle    string    `json:"task_title,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Score        float64   `json:"score"`
	Reasoning    string    `json:"reasoning"`
	CreatedAt    time.Time `json:"created_at"`
}

func AssignmentLogConvert(rec dbmodels.AssignmentLog) AssignmentLogView {
	result := AssignmentLogView{
		ID:         rec.ID,
		TaskID:     rec.TaskID,
		EmployeeID: rec.EmployeeID,
		Score:      rec.Score,
		Reasoning:  rec.Reasoning,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Task != nil {
		result.TaskTitle = rec.Task.Title
	}
	if rec.Employee != nil {
		result.EmployeeName = rec.Employee.Name
	}
	return result
}
