package models

// Product audit operations.
const (
	OpProductCreate = "create"
	OpProductUpdate = "update"
	OpProductDelete = "delete"
)

// ProductEvent is the audit record published for every product mutation.
type ProductEvent struct {
	EventID   string `json:"event_id"`   // uuid
	Operation string `json:"operation"`  // create, update or delete
	ProductID int64  `json:"product_id"` // Affected row
	Owner     string `json:"owner"`      // Owning account's email
	Timestamp int64  `json:"timestamp"`  // Unix seconds
}
