package client

// VaultEventMessage is the wire format of a vault event. Amounts are decimal
// strings of motes.
type VaultEventMessage struct {
	EventType   string `json:"event_type"`
	Account     string `json:"account,omitempty"`
	Amount      string `json:"amount"`
	OperationID string `json:"operation_id"`
	Timestamp   int64  `json:"timestamp"`
}
