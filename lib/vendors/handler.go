package vendorhandler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	"procure-ops-backend/lib/recommender"
	vendorstore "procure-ops-backend/lib/vendors/store"
	"procure-ops-backend/models"
	procurementapimodels "procure-ops-backend/models/api/procurement"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(data procurementapimodels.VendorData) (id string, err error)
	List() ([]procurementapimodels.VendorView, error)
	// FindBest picks the most suitable vendor for a category. Vendors
	// specialized in the category are preferred, any recommender failure
	// falls back to rating order. Item details on the request, when set,
	// are handed to the recommender so depleted stock can shift the
	// choice towards shorter lead times.
	FindBest(req procurementapimodels.VendorFindRequest) (*procurementapimodels.VendorRecommendation, error)
}

var Instance Provider

func NewHandler(rec recommender.Provider) {
	Instance = NewInstance(db.DB, rec)
}

func NewInstance(DB *gorm.DB, rec recommender.Provider) Provider {
	return impl{
		store:       vendorstore.NewInstance(DB),
		recommender: rec,
	}
}

type impl struct {
	store       vendorstore.Provider
	recommender recommender.Provider
}

func (i impl) Create(data procurementapimodels.VendorData) (string, error) {
	return i.store.Create(dbmodels.Vendor{
		Name:                data.Name,
		Specialization:      data.Specialization,
		Rating:              data.Rating,
		ReliabilityScore:    data.ReliabilityScore,
		AverageLeadTimeDays: data.AverageLeadTimeDays,
	})
}

func (i impl) List() ([]procurementapimodels.VendorView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]procurementapimodels.VendorView, 0, len(list))
	for _, rec := range list {
		result = append(result, procurementapimodels.VendorConvert(rec))
	}
	return result, nil
}

func (i impl) FindBest(req procurementapimodels.VendorFindRequest) (*procurementapimodels.VendorRecommendation, error) {
	vendors, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "vendor lookup failed")
	}
	if len(vendors) == 0 {
		return nil, errors.New("no vendors registered")
	}

	pool := filterBySpecialization(vendors, req.Category)
	if len(pool) == 0 {
		pool = vendors
	}
	sort.SliceStable(pool, func(a, b int) bool {
		if pool[a].Rating != pool[b].Rating {
			return pool[a].Rating > pool[b].Rating
		}
		return pool[a].ReliabilityScore > pool[b].ReliabilityScore
	})
	best := pool[0]
	fallbackReason := fmt.Sprintf("%s has the highest rating (%.1f) among %v candidates for %q",
		best.Name, best.Rating, len(pool), req.Category)

	if i.recommender == nil {
		return &procurementapimodels.VendorRecommendation{
			VendorID: best.ID, VendorName: best.Name, Reasoning: fallbackReason,
		}, nil
	}

	reply, err := i.recommender.Generate(vendorSystemPrompt, buildVendorPrompt(req, pool))
	if err != nil {
		log.WithError(err).Warn("recommender call failed, falling back to rating order")
		return &procurementapimodels.VendorRecommendation{
			VendorID: best.ID, VendorName: best.Name, Reasoning: fallbackReason,
		}, nil
	}
	rec, err := recommender.ParseVendorRecommendation(reply)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRecommendation) {
			log.WithError(err).Warn("vendor recommendation unparseable, falling back to rating order")
			return &procurementapimodels.VendorRecommendation{
				VendorID: best.ID, VendorName: best.Name, Reasoning: fallbackReason,
			}, nil
		}
		return nil, err
	}
	for _, cand := range pool {
		if strings.EqualFold(cand.Name, rec.BestVendorName) {
			reasoning := rec.Reasoning
			if reasoning == "" {
				reasoning = fallbackReason
			}
			return &procurementapimodels.VendorRecommendation{
				VendorID: cand.ID, VendorName: cand.Name, Reasoning: reasoning,
			}, nil
		}
	}
	log.WithField("name", rec.BestVendorName).Warn("recommended vendor not among candidates")
	return &procurementapimodels.VendorRecommendation{
		VendorID: best.ID, VendorName: best.Name, Reasoning: fallbackReason,
	}, nil
}

func filterBySpecialization(vendors []dbmodels.Vendor, category string) []dbmodels.Vendor {
	if category == "" {
		return vendors
	}
	result := make([]dbmodels.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.Specialization), strings.ToLower(category)) {
			result = append(result, v)
		}
	}
	return result
}

const vendorSystemPrompt = "You are a procurement sourcing assistant. " +
	"Pick the single best vendor for the item. " +
	"Weigh the criteria in this order: specialization match first, " +
	"then reliability and rating, and when current stock is zero " +
	"treat lead time as critical. " +
	"Answer with a JSON object only: " +
	`{"best_vendor_name": "...", "reasoning": "..."}`

func buildVendorPrompt(req procurementapimodels.VendorFindRequest, vendors []dbmodels.Vendor) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Category: %s\n", req.Category))
	if req.ItemName != "" {
		sb.WriteString(fmt.Sprintf("Item: %s\n", req.ItemName))
	}
	if req.CurrentStock != nil && req.MinThreshold != nil {
		sb.WriteString(fmt.Sprintf("Current stock: %v (threshold %v)\n", *req.CurrentStock, *req.MinThreshold))
	}
	sb.WriteString("\nVendors:\n")
	for _, v := range vendors {
		sb.WriteString(fmt.Sprintf("- %s | specialization: %s | rating: %.1f/5 | reliability: %.2f | lead time: %v days\n",
			v.Name, v.Specialization, v.Rating, v.ReliabilityScore, v.AverageLeadTimeDays))
	}
	return sb.String()
}
