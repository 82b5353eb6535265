// Package repair maps detected smells to suggested remediations.
package repair

import (
	"fmt"

	"github.com/panbanda/augur/pkg/models"
)

// template is the fix recipe for one smell type.
type template struct {
	fix        string
	category   models.FixCategory
	confidence float64
}

// templates holds the smell types with a known remediation. Types
// without an entry produce no suggestion rather than a generic one.
var templates = map[models.SmellType]template{
	models.SmellLongMethod: {
		fix:        "Break this method into smaller, focused methods",
		category:   models.FixRefactor,
		confidence: 0.70,
	},
	models.SmellLongParameterList: {
		fix:        "Introduce a parameter object to group related parameters",
		category:   models.FixRefactor,
		confidence: 0.65,
	},
}

// Suggester proposes repairs for smells. The zero value is usable.
type Suggester struct{}

// New creates a repair suggester.
func New() *Suggester {
	return &Suggester{}
}

// Suggest returns one repair per smell that has a known remediation,
// in input order. All repairs start with validation pending.
func (s *Suggester) Suggest(smells []models.Smell) []models.Repair {
	repairs := make([]models.Repair, 0, len(smells))
	for _, smell := range smells {
		t, ok := templates[smell.Type]
		if !ok {
			continue
		}
		repairs = append(repairs, models.Repair{
			LineStart:        smell.LineStart,
			LineEnd:          smell.LineEnd,
			IssueDescription: fmt.Sprintf("%s: %s", smell.Type, smell.Description),
			SuggestedFix:     t.fix,
			Category:         t.category,
			Confidence:       t.confidence,
			ValidationStatus: models.ValidationPending,
		})
	}
	return repairs
}
