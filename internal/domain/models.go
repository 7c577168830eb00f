package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Type        string  `db:"type" json:"type,omitempty"`
	Description string  `db:"description" json:"description,omitempty"`
	Price       float64 `db:"price" json:"price"`
	SizesJSON   string  `db:"sizes_json" json:"sizes"`
	Image       string  `db:"image" json:"image,omitempty"`
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

type Discount struct {
	ID            string  `db:"id"`
	Code          string  `db:"code"`
	Percentage    float64 `db:"percentage"`
	ValidFrom     string  `db:"valid_from"`
	ValidUntil    string  `db:"valid_until"`
	RemainingUses int     `db:"remaining_uses"`
	CreatedAt     string  `db:"created_at"`
}
