package dbmodels

import "procure-ops-backend/models"

type ProcurementTask struct {
	BaseModel
	Title          string `gorm:"type:varchar(255)"`
	RequiredSkill  string `gorm:"type:varchar(255)"`
	EstimatedHours float64
	Priority       models.TaskPriority `gorm:"type:varchar(100)"`
	Status         models.TaskStatus   `gorm:"type:varchar(100)"`
	AssignedTo     *string             `gorm:"type:varchar(36)"`
	Assignee       *Employee           `gorm:"foreignKey:AssignedTo"`
}

func (ProcurementTask) TableName() string {
	return "procurement_tasks"
}

type AssignmentLog struct {
	BaseModel
	TaskID     string `gorm:"type:varchar(36);index"`
	Task       *ProcurementTask
	EmployeeID string `gorm:"type:varchar(36);index"`
	Employee   *Employee
	Score      float64
	Reasoning  string
}

func (AssignmentLog) TableName() string {
	return "assignment_logs"
}
