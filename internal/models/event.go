package models

// Item event actions published to Kafka
const (
	ItemActionCreate = "create"
	ItemActionUpdate = "update"
	ItemActionDelete = "delete"
)

// ItemEvent represents an item change event published to Kafka
type ItemEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	ItemID    int64  `json:"item_id"`   // Affected item
	UserID    string `json:"user_id"`   // Owner of the item
	Action    string `json:"action"`    // One of create/update/delete
	Timestamp int64  `json:"timestamp"` // Unix time of the change
}
