package domain

// Product is a recommendable item. Only published products are eligible
// for inclusion in a recommendation set.
type Product struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status `json:"status" yaml:"status"`
}

// Published reports whether the product may be recommended.
func (p *Product) Published() bool {
	return p.Status == StatusPublished
}
