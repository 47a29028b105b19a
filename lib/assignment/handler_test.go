package assignmenthandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type stubRecommender struct {
	reply string
	err   error
}

func (s stubRecommender) Generate(system, text string) (string, error) {
	return s.reply, s.err
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func seedAssignment(t *testing.T, conn *gorm.DB) (taskID string, dana, lee dbmodels.Employee) {
	t.Helper()
	dana = dbmodels.Employee{Name: "Dana", Role: "Buyer", Skills: dbmodels.StringSlice{"Negotiation"}, MaxCapacity: 40, AllocatedHours: 10}
	lee = dbmodels.Employee{Name: "Lee", Role: "Analyst", Skills: dbmodels.StringSlice{"Logistics"}, MaxCapacity: 40, AllocatedHours: 0}
	require.NoError(t, conn.Create(&dana).Error)
	require.NoError(t, conn.Create(&lee).Error)
	task := dbmodels.ProcurementTask{
		Title:          "Negotiate steel contract",
		RequiredSkill:  "Negotiation",
		EstimatedHours: 12,
		Priority:       models.TaskPriorityHigh,
		Status:         models.TaskStatusPending,
	}
	require.NoError(t, conn.Create(&task).Error)
	return task.ID, dana, lee
}

func TestAssign(t *testing.T) {
	t.Run("recommended employee gets the task", func(t *testing.T) {
		conn := openTestDB(t)
		taskID, dana, _ := seedAssignment(t, conn)
		rec := stubRecommender{reply: `{"recommended_employee_name":"dana","score":0.9,"reasoning":"strong negotiator"}`}
		handler := NewInstance(conn, rec, models.CapacityPolicyAllow, nil)

		result, err := handler.Assign(taskID)
		require.NoError(t, err)
		require.Equal(t, dana.ID, result.EmployeeID)
		require.Equal(t, "Dana", result.AssignedTo)
		require.Equal(t, "strong negotiator", result.Reasoning)
		// the recommender's score, not the locally computed one
		require.Equal(t, 0.9, result.Score)

		task := dbmodels.ProcurementTask{}
		require.NoError(t, conn.First(&task, "id = ?", taskID).Error)
		require.Equal(t, models.TaskStatusInProgress, task.Status)
		require.NotNil(t, task.AssignedTo)
		require.Equal(t, dana.ID, *task.AssignedTo)

		updated := dbmodels.Employee{}
		require.NoError(t, conn.First(&updated, "id = ?", dana.ID).Error)
		require.Equal(t, 22.0, updated.AllocatedHours)

		logs := []dbmodels.AssignmentLog{}
		require.NoError(t, conn.Find(&logs).Error)
		require.Len(t, logs, 1)
		require.Equal(t, taskID, logs[0].TaskID)
		require.Equal(t, dana.ID, logs[0].EmployeeID)
		require.Equal(t, 0.9, logs[0].Score)
	})

	t.Run("no recommender uses local scoring", func(t *testing.T) {
		conn := openTestDB(t)
		taskID, dana, _ := seedAssignment(t, conn)
		handler := NewInstance(conn, nil, models.CapacityPolicyAllow, nil)

		result, err := handler.Assign(taskID)
		require.NoError(t, err)
		// skill match plus the better availability ratio
		require.Equal(t, dana.ID, result.EmployeeID)
		require.NotEmpty(t, result.Reasoning)
	})

	t.Run("unknown recommended name leaves everything untouched", func(t *testing.T) {
		conn := openTestDB(t)
		taskID, _, _ := seedAssignment(t, conn)
		rec := stubRecommender{reply: `{"recommended_employee_name":"Nobody","score":0.9,"reasoning":"x"}`}
		handler := NewInstance(conn, rec, models.CapacityPolicyAllow, nil)

		_, err := handler.Assign(taskID)
		require.ErrorIs(t, err, models.ErrNoCandidate)

		task := dbmodels.ProcurementTask{}
		require.NoError(t, conn.First(&task, "id = ?", taskID).Error)
		require.Equal(t, models.TaskStatusPending, task.Status)
		require.Nil(t, task.AssignedTo)
	})

	t.Run("unreadable recommendation is rejected", func(t *testing.T) {
		conn := openTestDB(t)
		taskID, _, _ := seedAssignment(t, conn)
		rec := stubRecommender{reply: "the model is overloaded"}
		handler := NewInstance(conn, rec, models.CapacityPolicyAllow, nil)

		_, err := handler.Assign(taskID)
		require.ErrorIs(t, err, models.ErrInvalidRecommendation)

		logs := []dbmodels.AssignmentLog{}
		require.NoError(t, conn.Find(&logs).Error)
		require.Empty(t, logs)
	})

	t.Run("recommender call failure propagates", func(t *testing.T) {
		conn := openTestDB(t)
		taskID, _, _ := seedAssignment(t, conn)
		rec := stubRecommender{err: errors.New("quota exceeded")}
		handler := NewInstance(conn, rec, models.CapacityPolicyAllow, nil)

		_, err := handler.Assign(taskID)
		require.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("missing task", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil, models.CapacityPolicyAllow, nil)
		_, err := handler.Assign("no-such-id")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("reject policy refuses over-capacity task", func(t *testing.T) {
		conn := openTestDB(t)
		busy := dbmodels.Employee{Name: "Dana", Skills: dbmodels.StringSlice{"Negotiation"}, MaxCapacity: 40, AllocatedHours: 35}
		require.NoError(t, conn.Create(&busy).Error)
		task := dbmodels.ProcurementTask{Title: "Big job", RequiredSkill: "Negotiation", EstimatedHours: 12,
			Priority: models.TaskPriorityLow, Status: models.TaskStatusPending}
		require.NoError(t, conn.Create(&task).Error)

		handler := NewInstance(conn, nil, models.CapacityPolicyReject, nil)
		_, err := handler.Assign(task.ID)
		require.ErrorIs(t, err, models.ErrCapacityExceeded)

		// nothing was written
		unchanged := dbmodels.ProcurementTask{}
		require.NoError(t, conn.First(&unchanged, "id = ?", task.ID).Error)
		require.Equal(t, models.TaskStatusPending, unchanged.Status)
		require.Nil(t, unchanged.AssignedTo)
	})

	t.Run("clamp policy books only available hours", func(t *testing.T) {
		conn := openTestDB(t)
		busy := dbmodels.Employee{Name: "Dana", Skills: dbmodels.StringSlice{"Negotiation"}, MaxCapacity: 40, AllocatedHours: 35}
		require.NoError(t, conn.Create(&busy).Error)
		task := dbmodels.ProcurementTask{Title: "Big job", RequiredSkill: "Negotiation", EstimatedHours: 12,
			Priority: models.TaskPriorityLow, Status: models.TaskStatusPending}
		require.NoError(t, conn.Create(&task).Error)

		handler := NewInstance(conn, nil, models.CapacityPolicyClamp, nil)
		_, err := handler.Assign(task.ID)
		require.NoError(t, err)

		updated := dbmodels.Employee{}
		require.NoError(t, conn.First(&updated, "id = ?", busy.ID).Error)
		require.Equal(t, 40.0, updated.AllocatedHours)
	})

	t.Run("completed task is not reassigned", func(t *testing.T) {
		conn := openTestDB(t)
		taskID, _, _ := seedAssignment(t, conn)
		require.NoError(t, conn.Model(&dbmodels.ProcurementTask{}).Where("id = ?", taskID).
			Update("status", models.TaskStatusCompleted).Error)
		handler := NewInstance(conn, nil, models.CapacityPolicyAllow, nil)
		_, err := handler.Assign(taskID)
		require.Error(t, err)
	})
}
