package domain

// Property identifies one listing in the portfolio. Only identity and
// count matter to the analytics engine; everything else about a
// property is opaque pass-through owned by the property provider.
type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
