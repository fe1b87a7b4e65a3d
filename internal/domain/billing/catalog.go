package billing

import (
	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// Offer is a purchasable plan shown on the pricing page
type Offer struct {
	Plan     profile.Plan       `json:"plan"`
	Name     string             `json:"name"`
	Price    int64              `json:"price"`
	Currency string             `json:"currency"`
	Interval string             `json:"interval"`
	PriceID  string             `json:"price_id"`
	Features []string           `json:"features"`
	Limits   entitlement.Limits `json:"limits"`
}

type offerTemplate struct {
	plan     profile.Plan
	name     string
	price    int64
	features []string
}

var offerTemplates = []offerTemplate{
	{
		plan:     profile.PlanBasic,
		name:     "Basic",
		price:    100000,
		features: []string{"1 kos", "10 rooms", "Core management"},
	},
	{
		plan:     profile.PlanPro,
		name:     "Pro",
		price:    250000,
		features: []string{"5 kos", "100 rooms", "Advanced features", "Priority support"},
	},
	{
		plan:     profile.PlanEnterprise,
		name:     "Enterprise",
		price:    500000,
		features: []string{"Unlimited kos", "Unlimited rooms", "24/7 support", "API access"},
	},
}

// Offers returns the plan catalog with checkout price ids from prices
// (plan name -> provider price id). Prices are monthly, in rupiah.
func Offers(prices map[string]string) []Offer {
	offers := make([]Offer, 0, len(offerTemplates))
	for _, t := range offerTemplates {
		limits, _ := entitlement.LimitsFor(t.plan)
		offers = append(offers, Offer{
			Plan:     t.plan,
			Name:     t.name,
			Price:    t.price,
			Currency: "IDR",
			Interval: "month",
			PriceID:  prices[string(t.plan)],
			Features: append([]string(nil), t.features...),
			Limits:   limits,
		})
	}
	return offers
}

// FindOffer returns the offer for plan.
func FindOffer(offers []Offer, plan profile.Plan) (Offer, bool) {
	for _, o := range offers {
		if o.Plan == plan {
			return o, true
		}
	}
	return Offer{}, false
}
