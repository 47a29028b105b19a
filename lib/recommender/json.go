package recommender

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"procure-ops-backend/models"
)

// EmployeeRecommendation is the JSON object the recommender is asked to
// answer with for task assignment.
type EmployeeRecommendation struct {
	RecommendedEmployeeName string  `json:"recommended_employee_name"`
	Score                   float64 `json:"score"`
	Reasoning               string  `json:"reasoning"`
}

// VendorRecommendation is the JSON object the recommender is asked to
// answer with for vendor sourcing.
type VendorRecommendation struct {
	BestVendorName string `json:"best_vendor_name"`
	Reasoning      string `json:"reasoning"`
}

// ExtractJSONBlock returns the first balanced {...} substring of the
// reply. Brace counting skips braces inside JSON string literals so a
// reasoning text containing '}' does not cut the block short.
func ExtractJSONBlock(reply string) (string, error) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return "", errors.Wrap(models.ErrInvalidRecommendation, "no JSON object in reply")
	}
	depth := 0
	inString := false
	escaped := false
	for pos := start; pos < len(reply); pos++ {
		ch := reply[pos]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return reply[start : pos+1], nil
			}
		}
	}
	return "", errors.Wrap(models.ErrInvalidRecommendation, "unbalanced JSON object in reply")
}

func ParseEmployeeRecommendation(reply string) (*EmployeeRecommendation, error) {
	block, err := ExtractJSONBlock(reply)
	if err != nil {
		return nil, err
	}
	result := EmployeeRecommendation{}
	if err = json.Unmarshal([]byte(block), &result); err != nil {
		return nil, errors.Wrapf(models.ErrInvalidRecommendation, "malformed JSON: %v", err)
	}
	if result.RecommendedEmployeeName == "" {
		return nil, errors.Wrap(models.ErrInvalidRecommendation, "recommended_employee_name is empty")
	}
	return &result, nil
}

func ParseVendorRecommendation(reply string) (*VendorRecommendation, error) {
	block, err := ExtractJSONBlock(reply)
	if err != nil {
		return nil, err
	}
	result := VendorRecommendation{}
	if err = json.Unmarshal([]byte(block), &result); err != nil {
		return nil, errors.Wrapf(models.ErrInvalidRecommendation, "malformed JSON: %v", err)
	}
	if result.BestVendorName == "" {
		return nil, errors.Wrap(models.ErrInvalidRecommendation, "best_vendor_name is empty")
	}
	return &result, nil
}
