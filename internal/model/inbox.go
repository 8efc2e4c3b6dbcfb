package model

// Availability values an inbox entry can carry.  The service does not
// reject other strings (the UI constrains the choices); these constants
// exist so code and tests never spell the states by hand.
const (
	AvailabilityAvailable   = "Available"
	AvailabilityUnavailable = "Unavailable"
	AvailabilityInUse       = "In Use"
	AvailabilityReserved    = "Reserved"
)

// Moderation status values for an inbox entry.  New entries are written
// as Approved; there is no pending state in the schema.
const (
	StatusApproved = "Approved"
	StatusDenied   = "Denied"
)

// InboxEntry is a denormalized snapshot of an asset taken at request
// time.  It deliberately carries no asset id: once written, later edits
// or deletion of the catalog row do not propagate here.  Moderators
// mutate only Availability and Status.
//
// Fields:
//  ID           – primary key identifier of the inbox row.
//  Image        – image path copied from the asset.
//  AssetName    – asset name at request time.
//  AssetType    – type name at request time.
//  SubCategory  – subcategory name at request time.
//  UserName     – username of the requester.
//  DueDate      – requested due date (YYYY-MM-DD).
//  Availability – allocation state of the underlying asset.
//  Status       – moderation outcome (Approved or Denied).
type InboxEntry struct {
	ID           uint64 `json:"id"`
	Image        string `json:"image"`
	AssetName    string `json:"assetName"`
	AssetType    string `json:"assetType"`
	SubCategory  string `json:"subCategory"`
	UserName     string `json:"userName"`
	DueDate      string `json:"dueDate"`
	Availability string `json:"availability"`
	Status       string `json:"status"`
}
