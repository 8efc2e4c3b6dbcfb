package model

// Asset represents a trackable inventory item as stored in the
// `assets` table.  Dates are kept as plain YYYY-MM-DD strings since
// the schema uses DATE columns and the UI never needs a time of day.
// The owner is referenced by username rather than by user id, which
// mirrors the schema this service inherited.
//
// Fields:
//  ID             – primary key identifier of the asset.
//  Name           – display name of the asset.
//  TypeID         – foreign key into the types table.
//  SubcategoryID  – foreign key into the subcategories table.
//  Username       – owner's username (references users.username).
//  UnitPrice      – purchase price per unit.
//  DueDate        – date the asset is due back, if assigned.
//  AssignedDate   – date the asset was assigned to its owner.
//  PurchaseDate   – date the asset was bought.
//  Description    – free-form description entered on the form.
//  Image          – relative path of the uploaded image (/images/...).
type Asset struct {
	ID            uint64  // assets.asset_id
	Name          string  // assets.asset_name
	TypeID        uint64  // assets.type_id
	SubcategoryID uint64  // assets.subcategory_id
	Username      string  // assets.username
	UnitPrice     float64 // assets.unit_price
	DueDate       string  // assets.due_date (YYYY-MM-DD, may be empty)
	AssignedDate  string  // assets.assigned_date (YYYY-MM-DD, may be empty)
	PurchaseDate  string  // assets.purchase_date (YYYY-MM-DD, may be empty)
	Description   string  // assets.description
	Image         string  // assets.image (relative path, may be empty)
}

// AssetDetail is an Asset joined with the human-readable names of its
// type, subcategory and owner.  It is the shape returned by listing
// endpoints; the grid and the search view render it directly.
type AssetDetail struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unitPrice"`
	DueDate         string  `json:"dueDate"`
	AssignedDate    string  `json:"assignedDate"`
	DateOfPurchase  string  `json:"dateOfPurchase"`
	Description     string  `json:"description"`
	UserName        string  `json:"userName"`
	TypeName        string  `json:"typeName"`
	SubCategoryName string  `json:"subCategoryName"`
	Image           string  `json:"image"`
}

// CountBucket is one row of a dashboard aggregate: a bucket label and
// the number of assets that fall into it.  Buckets partition the
// catalog, so the counts of one aggregate always sum to the total
// number of assets.
type CountBucket struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// MonthBucket groups assets by the calendar year-month of their
// assigned date, ascending.
type MonthBucket struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}
