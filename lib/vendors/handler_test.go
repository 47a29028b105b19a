package vendorhandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	procurementapimodels "procure-ops-backend/models/api/procurement"
)

type stubRecommender struct {
	reply      string
	err        error
	seenSystem *string
	seenPrompt *string
}

func (s stubRecommender) Generate(systemPrompt, userPrompt string) (string, error) {
	if s.seenSystem != nil {
		*s.seenSystem = systemPrompt
	}
	if s.seenPrompt != nil {
		*s.seenPrompt = userPrompt
	}
	return s.reply, s.err
}

func findRequest(category string) procurementapimodels.VendorFindRequest {
	return procurementapimodels.VendorFindRequest{Category: category}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func seedVendors(t *testing.T, handler Provider) map[string]string {
	t.Helper()
	ids := map[string]string{}
	for _, data := range []procurementapimodels.VendorData{
		{Name: "SteelCo", Specialization: "Raw Materials", Rating: 4.2, ReliabilityScore: 0.90},
		{Name: "MetalPrime", Specialization: "Raw Materials, Parts", Rating: 4.8, ReliabilityScore: 0.85},
		{Name: "OfficeHub", Specialization: "Office Supplies", Rating: 5.0, ReliabilityScore: 0.99},
	} {
		id, err := handler.Create(data)
		require.NoError(t, err)
		ids[data.Name] = id
	}
	return ids
}

func TestFindBest(t *testing.T) {
	t.Run("recommended vendor wins", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, stubRecommender{
			reply: `{"best_vendor_name": "SteelCo", "reasoning": "Best reliability for bulk steel."}`,
		})
		ids := seedVendors(t, handler)

		rec, err := handler.FindBest(findRequest("Raw Materials"))
		require.NoError(t, err)
		require.Equal(t, ids["SteelCo"], rec.VendorID)
		require.Equal(t, "Best reliability for bulk steel.", rec.Reasoning)
	})

	t.Run("specialization filters out unrelated vendors", func(t *testing.T) {
		conn := openTestDB(t)
		// OfficeHub has the top rating overall but no fit for the category
		handler := NewInstance(conn, stubRecommender{
			reply: `{"best_vendor_name": "OfficeHub", "reasoning": "Top rated."}`,
		})
		ids := seedVendors(t, handler)

		rec, err := handler.FindBest(findRequest("Raw Materials"))
		require.NoError(t, err)
		require.Equal(t, ids["MetalPrime"], rec.VendorID)
	})

	t.Run("rating order when the recommender fails", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, stubRecommender{err: errors.New("model unavailable")})
		ids := seedVendors(t, handler)

		rec, err := handler.FindBest(findRequest("Raw Materials"))
		require.NoError(t, err)
		require.Equal(t, ids["MetalPrime"], rec.VendorID)
		require.Contains(t, rec.Reasoning, "highest rating")
	})

	t.Run("rating order when the reply is not parseable", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, stubRecommender{reply: "I would suggest asking around."})
		ids := seedVendors(t, handler)

		rec, err := handler.FindBest(findRequest("Raw Materials"))
		require.NoError(t, err)
		require.Equal(t, ids["MetalPrime"], rec.VendorID)
	})

	t.Run("no specialization match falls back to the full pool", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		ids := seedVendors(t, handler)

		rec, err := handler.FindBest(findRequest("Electronics"))
		require.NoError(t, err)
		require.Equal(t, ids["OfficeHub"], rec.VendorID)
	})

	t.Run("prompt carries item context and selection criteria", func(t *testing.T) {
		conn := openTestDB(t)
		var system, prompt string
		handler := NewInstance(conn, stubRecommender{
			reply:      `{"best_vendor_name": "SteelCo", "reasoning": "Fastest delivery."}`,
			seenSystem: &system,
			seenPrompt: &prompt,
		})
		seedVendors(t, handler)

		stock, threshold := 0.0, 40.0
		_, err := handler.FindBest(procurementapimodels.VendorFindRequest{
			Category:     "Raw Materials",
			ItemName:     "Steel sheets",
			CurrentStock: &stock,
			MinThreshold: &threshold,
		})
		require.NoError(t, err)
		require.Contains(t, prompt, "Item: Steel sheets")
		require.Contains(t, prompt, "Current stock: 0 (threshold 40)")
		require.Contains(t, system, "specialization match first")
		require.Contains(t, system, "lead time")
	})

	t.Run("no vendors registered", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		_, err := handler.FindBest(findRequest("Raw Materials"))
		require.Error(t, err)
	})
}
