package model

// Type is a row of the `types` table: a top-level asset category such
// as "Electronics".  Static reference data seeded at install time.
type Type struct {
	ID   uint64 `json:"id"`   // types.type_id
	Name string `json:"name"` // types.type_name
}

// Subcategory is a row of the `subcategories` table.  Each subcategory
// belongs to exactly one type; the asset form loads them per type.
type Subcategory struct {
	ID     uint64 `json:"id"`   // subcategories.subcategory_id
	TypeID uint64 `json:"-"`    // subcategories.type_id
	Name   string `json:"name"` // subcategories.subcategory_name
}
