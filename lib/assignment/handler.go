package assignmenthandler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	assignmentlogstore "procure-ops-backend/lib/assignment/log-store"
	employeestore "procure-ops-backend/lib/employee/store"
	notificationhandler "procure-ops-backend/lib/notification"
	"procure-ops-backend/lib/recommender"
	taskstore "procure-ops-backend/lib/task/store"
	"procure-ops-backend/models"
	workforceapimodels "procure-ops-backend/models/api/workforce"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Assign(taskID string) (*workforceapimodels.AssignmentResponse, error)
	ListLogs() ([]workforceapimodels.AssignmentLogView, error)
}

var Instance Provider

func NewHandler(rec recommender.Provider, policy models.CapacityPolicy) {
	Instance = NewInstance(db.DB, rec, policy, notificationhandler.Instance)
}

func NewInstance(DB *gorm.DB, rec recommender.Provider, policy models.CapacityPolicy,
	notifier notificationhandler.Provider) Provider {
	return impl{
		db:          DB,
		taskStore:   taskstore.NewInstance(DB),
		empStore:    employeestore.NewInstance(DB),
		logStore:    assignmentlogstore.NewInstance(DB),
		recommender: rec,
		policy:      policy,
		notifier:    notifier,
	}
}

type impl struct {
	db          *gorm.DB
	taskStore   taskstore.Provider
	empStore    employeestore.Provider
	logStore    assignmentlogstore.Provider
	recommender recommender.Provider
	policy      models.CapacityPolicy
	notifier    notificationhandler.Provider
}

type scoredCandidate struct {
	emp   dbmodels.Employee
	score float64
}

func (i impl) Assign(taskID string) (*workforceapimodels.AssignmentResponse, error) {
	logger := log.WithField("task_id", taskID)
	task, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return nil, errors.Wrap(err, "task lookup failed")
	}
	if task == nil {
		return nil, models.ErrNotFound
	}
	if task.Status == models.TaskStatusCompleted {
		return nil, errors.New("task is already completed")
	}

	employees, err := i.empStore.List()
	if err != nil {
		return nil, errors.Wrap(err, "candidate lookup failed")
	}
	if len(employees) == 0 {
		return nil, errors.New("no candidates available")
	}

	candidates := make([]scoredCandidate, 0, len(employees))
	for _, emp := range employees {
		candidates = append(candidates, scoredCandidate{emp: emp, score: CalculateScore(*task, emp)})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	logs := []string{fmt.Sprintf("Scored %v candidates for task %q", len(candidates), task.Title)}

	chosen, score, reasoning, recLog, err := i.pickCandidate(*task, candidates)
	if err != nil {
		return nil, err
	}
	logs = append(logs, recLog)

	delta, err := hoursToAllocate(i.policy, *task, chosen)
	if err != nil {
		return nil, err
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		txTasks := taskstore.NewInstance(tx)
		txEmployees := employeestore.NewInstance(tx)
		txLogs := assignmentlogstore.NewInstance(tx)

		if err := txTasks.Update(task.ID, map[string]interface{}{
			"assigned_to": chosen.ID,
			"status":      models.TaskStatusInProgress,
		}); err != nil {
			return errors.Wrap(err, "task update failed")
		}
		if err := txEmployees.Update(chosen.ID, map[string]interface{}{
			"allocated_hours": chosen.AllocatedHours + delta,
		}); err != nil {
			return errors.Wrap(err, "employee allocation update failed")
		}
		_, err := txLogs.Create(dbmodels.AssignmentLog{
			TaskID:     task.ID,
			EmployeeID: chosen.ID,
			Score:      score,
			Reasoning:  reasoning,
		})
		return errors.Wrap(err, "assignment log write failed")
	})
	if err != nil {
		return nil, err
	}
	logs = append(logs, fmt.Sprintf("Assigned %q to %s (%.2f)", task.Title, chosen.Name, score))

	if i.notifier != nil {
		i.notifier.SendTaskAssignment(chosen.ID, task.Title, task.ID)
	}
	logger.WithField("employee_id", chosen.ID).Info("task assigned")

	return &workforceapimodels.AssignmentResponse{
		EmployeeID: chosen.ID,
		AssignedTo: chosen.Name,
		Score:      score,
		Reasoning:  reasoning,
		Logs:       logs,
	}, nil
}

// pickCandidate chooses the employee to assign. Without a recommender
// the locally best scored candidate wins. With one, the reply is
// untrusted: an unreadable reply surfaces as ErrInvalidRecommendation
// and a name outside the candidate set as ErrNoCandidate, both before
// any mutation. A matched recommendation is taken as reported, its
// score goes into the log verbatim.
func (i impl) pickCandidate(task dbmodels.ProcurementTask, candidates []scoredCandidate) (dbmodels.Employee, float64, string, string, error) {
	best := candidates[0]

	if i.recommender == nil {
		return best.emp, best.score, GenerateReasoning(task, best.emp, best.score),
			"Recommender not configured, used local scoring", nil
	}

	reply, err := i.recommender.Generate(assignSystemPrompt, buildAssignPrompt(task, candidates))
	if err != nil {
		return dbmodels.Employee{}, 0, "", "", errors.Wrap(err, "recommender call failed")
	}
	rec, err := recommender.ParseEmployeeRecommendation(reply)
	if err != nil {
		return dbmodels.Employee{}, 0, "", "", err
	}
	for _, cand := range candidates {
		if strings.EqualFold(cand.emp.Name, rec.RecommendedEmployeeName) {
			reasoning := rec.Reasoning
			if reasoning == "" {
				reasoning = GenerateReasoning(task, cand.emp, cand.score)
			}
			return cand.emp, rec.Score, reasoning, fmt.Sprintf("Recommender selected %s", cand.emp.Name), nil
		}
	}
	log.WithField("name", rec.RecommendedEmployeeName).Warn("recommended employee not among candidates")
	return dbmodels.Employee{}, 0, "", "",
		errors.Wrapf(models.ErrNoCandidate, "recommended employee %q not among candidates", rec.RecommendedEmployeeName)
}

func hoursToAllocate(policy models.CapacityPolicy, task dbmodels.ProcurementTask, emp dbmodels.Employee) (float64, error) {
	available := emp.AvailableHours()
	switch policy {
	case models.CapacityPolicyReject:
		if task.EstimatedHours > available {
			return 0, errors.Wrapf(models.ErrCapacityExceeded,
				"%s has %v hours available, task needs %v", emp.Name, available, task.EstimatedHours)
		}
		return task.EstimatedHours, nil
	case models.CapacityPolicyClamp:
		if available <= 0 {
			return 0, nil
		}
		if task.EstimatedHours > available {
			return available, nil
		}
		return task.EstimatedHours, nil
	default:
		return task.EstimatedHours, nil
	}
}

const assignSystemPrompt = "You are a procurement workload planner. " +
	"Pick the single best employee for the task. " +
	"Answer with a JSON object only: " +
	`{"recommended_employee_name": "...", "score": 0.0, "reasoning": "..."}`

func buildAssignPrompt(task dbmodels.ProcurementTask, candidates []scoredCandidate) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Task: %s\nRequired skill: %s\nEstimated hours: %v\nPriority: %s\n\nCandidates:\n",
		task.Title, task.RequiredSkill, task.EstimatedHours, task.Priority))
	for _, cand := range candidates {
		sb.WriteString(fmt.Sprintf("- %s | role: %s | skills: %s | available hours: %v of %v | local score: %.2f\n",
			cand.emp.Name, cand.emp.Role, strings.Join(cand.emp.Skills, ", "),
			cand.emp.AvailableHours(), cand.emp.MaxCapacity, cand.score))
	}
	return sb.String()
}

func (i impl) ListLogs() ([]workforceapimodels.AssignmentLogView, error) {
	list, err := i.logStore.List()
	if err != nil {
		return nil, err
	}
	result := make([]workforceapimodels.AssignmentLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, workforceapimodels.AssignmentLogConvert(rec))
	}
	return result, nil
}
