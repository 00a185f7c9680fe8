package shopping

import (
	"strings"

	"github.com/google/uuid"
)

// planItemNamespace scopes the deterministic IDs given to plan items.
var planItemNamespace = uuid.MustParse("6f1c2a8e-4b57-4d0a-9a63-2c1e8d7b5f40")

// PlanKey is the merge identity of an ingredient: case and surrounding
// whitespace are ignored on both name and unit.
func PlanKey(name, unit string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(unit))
}

// PlanItemID returns the stable item ID for a plan key, so re-syncing the
// same plan never churns IDs.
func PlanItemID(planKey string) string {
	return uuid.NewSHA1(planItemNamespace, []byte(planKey)).String()
}
