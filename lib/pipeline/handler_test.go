package pipelinehandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	assignmenthandler "procure-ops-backend/lib/assignment"
	employeehandler "procure-ops-backend/lib/employee"
	inventoryhandler "procure-ops-backend/lib/inventory"
	"procure-ops-backend/lib/recommender"
	taskhandler "procure-ops-backend/lib/task"
	vendorhandler "procure-ops-backend/lib/vendors"
	"procure-ops-backend/models"
	procurementapimodels "procure-ops-backend/models/api/procurement"
	workforceapimodels "procure-ops-backend/models/api/workforce"
	dbmodels "procure-ops-backend/models/db"
)

type capturingRecommender struct {
	prompt *string
	reply  string
}

func (c capturingRecommender) Generate(systemPrompt, userPrompt string) (string, error) {
	*c.prompt = userPrompt
	return c.reply, nil
}

type fixtures struct {
	conn      *gorm.DB
	pipeline  Provider
	inventory inventoryhandler.Provider
	vendors   vendorhandler.Provider
	employees employeehandler.Provider
}

func newFixtures(t *testing.T, vendorRec recommender.Provider) fixtures {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	inventory := inventoryhandler.NewInstance(conn, nil)
	vendors := vendorhandler.NewInstance(conn, vendorRec)
	tasks := taskhandler.NewInstance(conn)
	assignments := assignmenthandler.NewInstance(conn, nil, models.CapacityPolicyAllow, nil)
	return fixtures{
		conn:      conn,
		pipeline:  NewInstance(inventory, vendors, tasks, assignments),
		inventory: inventory,
		vendors:   vendors,
		employees: employeehandler.NewInstance(conn),
	}
}

func (f fixtures) seedEmployee(t *testing.T, name string, skills []string, allocated float64) string {
	t.Helper()
	id, err := f.employees.Create(workforceapimodels.EmployeeData{
		Name:           name,
		Role:           "Procurement Specialist",
		Skills:         skills,
		MaxCapacity:    40,
		AllocatedHours: allocated,
	})
	require.NoError(t, err)
	return id
}

func (f fixtures) seedVendor(t *testing.T, name, specialization string, rating float64) string {
	t.Helper()
	id, err := f.vendors.Create(procurementapimodels.VendorData{
		Name: name, Specialization: specialization, Rating: rating, ReliabilityScore: 0.9,
	})
	require.NoError(t, err)
	return id
}

func TestRun(t *testing.T) {
	t.Run("depleted stock produces an assigned restocking task", func(t *testing.T) {
		f := newFixtures(t, nil)
		_, err := f.inventory.Create(procurementapimodels.InventoryItemData{
			ItemName: "Steel sheets", Category: "Raw Materials",
			CurrentStock: 0, MinThreshold: 50,
		})
		require.NoError(t, err)
		_, err = f.inventory.Create(procurementapimodels.InventoryItemData{
			ItemName: "Paint", Category: "Supplies",
			CurrentStock: 500, MinThreshold: 20,
		})
		require.NoError(t, err)
		vendorID := f.seedVendor(t, "SteelCo", "Raw Materials", 4.6)
		f.seedVendor(t, "OfficeHub", "Office Supplies", 5.0)
		buyerID := f.seedEmployee(t, "Dana Schmidt", []string{"Procurement", "Negotiation"}, 10)
		f.seedEmployee(t, "Lee Wong", []string{"Logistics"}, 0)

		result, err := f.pipeline.Run()
		require.NoError(t, err)

		require.NotNil(t, result.SelectedItem)
		require.Equal(t, "Steel sheets", result.SelectedItem.ItemName)
		require.NotNil(t, result.RecommendedVendor)
		require.Equal(t, vendorID, result.RecommendedVendor.VendorID)
		require.NotNil(t, result.AssignmentResult)
		require.Equal(t, buyerID, result.AssignmentResult.EmployeeID)

		task := dbmodels.ProcurementTask{}
		require.NoError(t, f.conn.First(&task, "title = ?", "Restock Steel sheets").Error)
		require.Equal(t, models.TaskPriorityHigh, task.Priority)
		require.Equal(t, models.TaskStatusInProgress, task.Status)
		require.NotNil(t, task.AssignedTo)
		require.Equal(t, buyerID, *task.AssignedTo)

		require.NotEmpty(t, result.Logs)
		require.Contains(t, result.Logs, "Created task Restock Steel sheets")
	})

	t.Run("low but not empty stock opens a medium priority task", func(t *testing.T) {
		f := newFixtures(t, nil)
		_, err := f.inventory.Create(procurementapimodels.InventoryItemData{
			ItemName: "Tires", Category: "Parts",
			CurrentStock: 10, MinThreshold: 40,
		})
		require.NoError(t, err)
		f.seedVendor(t, "RubberWorks", "Parts", 4.1)
		f.seedEmployee(t, "Dana Schmidt", []string{"Procurement"}, 0)

		result, err := f.pipeline.Run()
		require.NoError(t, err)

		task := dbmodels.ProcurementTask{}
		require.NoError(t, f.conn.First(&task, "title = ?", "Restock Tires").Error)
		require.Equal(t, models.TaskPriorityMedium, task.Priority)
		require.Equal(t, restockSkill, task.RequiredSkill)
		require.Equal(t, float64(restockHours), task.EstimatedHours)
		require.NotNil(t, result.AssignmentResult)
	})

	t.Run("vendor sourcing sees the selected item", func(t *testing.T) {
		var prompt string
		f := newFixtures(t, capturingRecommender{
			prompt: &prompt,
			reply:  `{"best_vendor_name": "SteelCo", "reasoning": "Shortest lead time."}`,
		})
		_, err := f.inventory.Create(procurementapimodels.InventoryItemData{
			ItemName: "Steel sheets", Category: "Raw Materials",
			CurrentStock: 0, MinThreshold: 50,
		})
		require.NoError(t, err)
		f.seedVendor(t, "SteelCo", "Raw Materials", 4.6)
		f.seedEmployee(t, "Dana Schmidt", []string{"Procurement"}, 0)

		_, err = f.pipeline.Run()
		require.NoError(t, err)
		require.Contains(t, prompt, "Item: Steel sheets")
		require.Contains(t, prompt, "Current stock: 0 (threshold 50)")
	})

	t.Run("nothing to restock", func(t *testing.T) {
		f := newFixtures(t, nil)
		_, err := f.inventory.Create(procurementapimodels.InventoryItemData{
			ItemName: "Paint", Category: "Supplies",
			CurrentStock: 500, MinThreshold: 20,
		})
		require.NoError(t, err)

		result, err := f.pipeline.Run()
		require.NoError(t, err)
		require.Nil(t, result.SelectedItem)
		require.Nil(t, result.RecommendedVendor)
		require.Nil(t, result.AssignmentResult)
		require.Contains(t, result.Logs, "All inventory levels are sufficient")
	})

	t.Run("no vendors stops the run", func(t *testing.T) {
		f := newFixtures(t, nil)
		_, err := f.inventory.Create(procurementapimodels.InventoryItemData{
			ItemName: "Chips", Category: "Electronics",
			CurrentStock: 0, MinThreshold: 5,
		})
		require.NoError(t, err)

		_, err = f.pipeline.Run()
		require.Error(t, err)
	})
}
