package billing

import (
	"fmt"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// ProductCatalog maps provider product ids to plans
type ProductCatalog struct {
	plans map[string]profile.Plan
}

// NewProductCatalog builds a catalog from product id -> plan name.
func NewProductCatalog(products map[string]string) (*ProductCatalog, error) {
	plans := make(map[string]profile.Plan, len(products))
	for productID, name := range products {
		plan := profile.Plan(name)
		if !plan.Valid() {
			return nil, fmt.Errorf("product %s maps to unknown plan %q", productID, name)
		}
		plans[productID] = plan
	}
	return &ProductCatalog{plans: plans}, nil
}

// PlanFor resolves a product id. Unknown products fall back to the
// default plan with known=false.
func (c *ProductCatalog) PlanFor(productID string) (plan profile.Plan, known bool) {
	if plan, ok := c.plans[productID]; ok {
		return plan, true
	}
	return profile.DefaultPlan, false
}
