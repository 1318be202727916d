package estimand

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// Service decides identifiability for an SCM template using a back-door
// heuristic: a non-empty confounder set is taken as a valid adjustment set,
// an empty one refuses observational identification outright
type Service struct{}

// NewService creates an estimand service
func NewService() *Service {
	return &Service{}
}

// Compute returns the identification verdict for a template. The adjustment
// formula sums over the confounders in template order.
func (s *Service) Compute(tpl model.ScmTemplate) model.EstimandResult {
	if len(tpl.Z) == 0 {
		return model.EstimandResult{
			Identifiable: false,
			Expression:   "",
			Reason:       "Back-door not satisfied with available variables; require experiment or instrument.",
		}
	}

	zList := strings.Join(tpl.Z, ", ")
	return model.EstimandResult{
		Identifiable: true,
		Expression:   fmt.Sprintf("Sum_{%s} P(%s|%s, %s) * P(%s)", zList, tpl.Y, tpl.X, zList, zList),
		Reason:       "Back-door criterion satisfied using Z.",
	}
}
