package domain

// Residence is one listed property. JSON field names follow the client schema.
type Residence struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	City        string  `json:"city"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	SurfaceArea float64 `json:"surfaceArea"`
	Description string  `json:"description"`
	Image       string  `json:"image"` // single URL
	Type        string  `json:"type"`

	AgentID *int64 `json:"-"`
	Agent   *Agent `json:"-"` // only populated by FindResidenceWithAgent
}

type Agent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResidenceFilter narrows catalog listings. Zero values mean "no constraint".
type ResidenceFilter struct {
	City        string
	Type        string
	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
}
