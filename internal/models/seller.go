package models

// Seller is a fixed reference entity seeded at startup and immutable
// at runtime. Deals reference sellers by id; a dangling SellerID is
// tolerated and rendered as unknown.
type Seller struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

var Sellers = []Seller{
	{ID: "sel-1", Name: "Andrés Mendoza"},
	{ID: "sel-2", Name: "Beatriz Salazar"},
	{ID: "sel-3", Name: "Carlos Ibáñez"},
	{ID: "sel-4", Name: "Daniela Torres"},
}

// SellerName resolves a seller id for display; unknown ids degrade to
// "N/A" instead of failing.
func SellerName(id string) string {
	for _, s := range Sellers {
		if s.ID == id {
			return s.Name
		}
	}
	return "N/A"
}
