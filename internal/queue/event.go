// Package queue defines message payloads exchanged over the message broker.
package queue

// AssetRequestedEvent is published when a request is written to the
// inbox.  It carries the denormalized snapshot fields so downstream
// consumers can log or notify without querying the primary database.
type AssetRequestedEvent struct {
	EntryID     uint64 `json:"entry_id"`
	AssetName   string `json:"asset_name"`
	AssetType   string `json:"asset_type"`
	SubCategory string `json:"sub_category"`
	RequestedBy string `json:"requested_by"`
	DueDate     string `json:"due_date"`
	RequestedAt string `json:"requested_at"`
}
