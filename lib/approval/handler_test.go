package approvalhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	approvalstore "procure-ops-backend/lib/approval/store"
	"procure-ops-backend/models"
	approvalapimodels "procure-ops-backend/models/api/approval"
	dbmodels "procure-ops-backend/models/db"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func TestMaxApprovalLevels(t *testing.T) {
	require.Equal(t, 1, MaxApprovalLevels(5000))
	require.Equal(t, 1, MaxApprovalLevels(10000))
	require.Equal(t, 2, MaxApprovalLevels(25000))
	require.Equal(t, 2, MaxApprovalLevels(50000))
	require.Equal(t, 3, MaxApprovalLevels(75000))
}

func TestBuildChain(t *testing.T) {
	chain := BuildChain(3)
	require.Len(t, chain, 3)
	require.Equal(t, "Manager", chain[0].Approver)
	require.Equal(t, "Director", chain[1].Approver)
	require.Equal(t, "CFO", chain[2].Approver)
	for _, entry := range chain {
		require.Equal(t, models.ApprovalStatusPending, entry.Status)
	}
}

func decision(id string, action models.ApprovalAction) approvalapimodels.ApprovalProcessData {
	return approvalapimodels.ApprovalProcessData{
		ApprovalID:   id,
		Action:       action,
		ApproverID:   "appr-1",
		ApproverName: "Pat",
	}
}

func TestProcess(t *testing.T) {
	t.Run("single-level request is approved at once", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		created, err := handler.Create(approvalapimodels.ApprovalCreateData{
			RequestType: models.ApprovalTypePurchaseOrder,
			Amount:      5000,
		})
		require.NoError(t, err)
		require.Equal(t, 1, created.MaxApprovalLevel)

		result, err := handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.NoError(t, err)
		require.Equal(t, models.ApprovalStatusApproved, result.Status)
		require.NotNil(t, result.ApprovedAt)
		require.NotNil(t, result.ApprovedBy)
		require.Equal(t, "appr-1", *result.ApprovedBy)
	})

	t.Run("three-level request advances through the chain", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		created, err := handler.Create(approvalapimodels.ApprovalCreateData{
			RequestType: models.ApprovalTypeHighValuePurchase,
			Amount:      75000,
		})
		require.NoError(t, err)
		require.Equal(t, 3, created.MaxApprovalLevel)

		first, err := handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.NoError(t, err)
		require.Equal(t, models.ApprovalStatusPending, first.Status)
		require.Equal(t, 2, first.CurrentApproverLevel)
		require.Equal(t, models.ApprovalStatusApproved, first.ApprovalChain[0].Status)
		require.Equal(t, models.ApprovalStatusPending, first.ApprovalChain[1].Status)

		second, err := handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.NoError(t, err)
		require.Equal(t, 3, second.CurrentApproverLevel)

		final, err := handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.NoError(t, err)
		require.Equal(t, models.ApprovalStatusApproved, final.Status)

		history, err := handler.History(created.ID)
		require.NoError(t, err)
		require.Len(t, history, 3)
	})

	t.Run("rejection is terminal at any level", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		created, err := handler.Create(approvalapimodels.ApprovalCreateData{
			RequestType: models.ApprovalTypeBudgetOverride,
			Amount:      25000,
		})
		require.NoError(t, err)

		data := decision(created.ID, models.ApprovalActionRejected)
		data.RejectionReason = "over budget"
		result, err := handler.Process(data)
		require.NoError(t, err)
		require.Equal(t, models.ApprovalStatusRejected, result.Status)
		require.Equal(t, "over budget", result.RejectionReason)

		_, err = handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.ErrorIs(t, err, models.ErrAlreadyProcessed)
	})

	t.Run("approved request cannot be processed again", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		created, err := handler.Create(approvalapimodels.ApprovalCreateData{
			RequestType: models.ApprovalTypePurchaseOrder,
			Amount:      100,
		})
		require.NoError(t, err)
		_, err = handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.NoError(t, err)
		_, err = handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.ErrorIs(t, err, models.ErrAlreadyProcessed)
	})

	t.Run("final decision closes the linked purchase order", func(t *testing.T) {
		conn := openTestDB(t)
		po := dbmodels.PurchaseOrder{VendorID: "v-1", InventoryID: "i-1", Quantity: 10, UnitPrice: 50,
			TotalCost: 500, Status: models.POStatusDraft}
		require.NoError(t, conn.Create(&po).Error)

		handler := NewInstance(conn, nil)
		created, err := handler.Create(approvalapimodels.ApprovalCreateData{
			PurchaseOrderID: &po.ID,
			RequestType:     models.ApprovalTypePurchaseOrder,
			Amount:          500,
		})
		require.NoError(t, err)
		_, err = handler.Process(decision(created.ID, models.ApprovalActionApproved))
		require.NoError(t, err)

		updated := dbmodels.PurchaseOrder{}
		require.NoError(t, conn.First(&updated, "id = ?", po.ID).Error)
		require.Equal(t, models.POStatusApproved, updated.Status)
	})

	t.Run("missing request", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		_, err := handler.Process(decision("no-such-id", models.ApprovalActionApproved))
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestUpdateGuarded(t *testing.T) {
	conn := openTestDB(t)
	store := approvalstore.NewInstance(conn)
	id, err := store.Create(dbmodels.ApprovalRequest{
		RequestType:          models.ApprovalTypePurchaseOrder,
		Amount:               25000,
		Status:               models.ApprovalStatusPending,
		CurrentApproverLevel: 1,
		MaxApprovalLevel:     2,
		ApprovalChain:        BuildChain(2),
	})
	require.NoError(t, err)

	t.Run("stale level does not match", func(t *testing.T) {
		rows, err := store.UpdateGuarded(id, 2, map[string]interface{}{"current_approver_level": 3})
		require.NoError(t, err)
		require.Zero(t, rows)
	})

	t.Run("current level matches once", func(t *testing.T) {
		rows, err := store.UpdateGuarded(id, 1, map[string]interface{}{"current_approver_level": 2})
		require.NoError(t, err)
		require.Equal(t, int64(1), rows)

		// the same guard cannot apply twice
		rows, err = store.UpdateGuarded(id, 1, map[string]interface{}{"current_approver_level": 2})
		require.NoError(t, err)
		require.Zero(t, rows)
	})
}
