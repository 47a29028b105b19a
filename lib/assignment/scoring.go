package assignmenthandler

import (
	"fmt"
	"math"

	dbmodels "procure-ops-backend/models/db"
)

const (
	skillWeight        = 0.4
	availabilityWeight = 0.6
)

// CalculateScore rates how well an employee fits a task on a 0..1 scale.
// Skill match contributes 40%, remaining weekly capacity 60%.
func CalculateScore(task dbmodels.ProcurementTask, emp dbmodels.Employee) float64 {
	skillMatch := 0.0
	if emp.HasSkill(task.RequiredSkill) {
		skillMatch = 1.0
	}
	availability := 0.0
	if emp.MaxCapacity > 0 {
		availability = emp.AvailableHours() / emp.MaxCapacity
		if availability < 0 {
			availability = 0
		}
	}
	score := skillMatch*skillWeight + availability*availabilityWeight
	return math.Round(score*100) / 100
}

// GenerateReasoning builds the human-readable explanation stored in the
// assignment log alongside the numeric score.
func GenerateReasoning(task dbmodels.ProcurementTask, emp dbmodels.Employee, score float64) string {
	skillNote := "does not list"
	if emp.HasSkill(task.RequiredSkill) {
		skillNote = "lists"
	}
	return fmt.Sprintf("%s %s the required skill %q and has %v of %v hours available (score %.2f)",
		emp.Name, skillNote, task.RequiredSkill, emp.AvailableHours(), emp.MaxCapacity, score)
}
