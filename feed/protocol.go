package feed

import "encoding/json"

// Message is one websocket frame in either direction.
type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	DataType string          `json:"dataType,omitempty"`
	IDs      []string        `json:"ids,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Count    int             `json:"count,omitempty"`
	Error    string          `json:"error,omitempty"`

	// status is the HTTP status of a reply to a REST request.
	status int
}

const (
	// Commands sent by clients.
	TypeSetData = "setData"
	TypeAddData = "addData"
	TypeRemove  = "remove"

	// Replies and notifications sent by the server.
	TypeWelcome = "welcome"
	TypeAck     = "ack"
	TypeError   = "error"
	// TypeUpdated is broadcast to every client after a data change from any source.
	TypeUpdated = "updated"
)

// response is the REST reply body.
type response struct {
	Type     string `json:"type"`
	DataType string `json:"dataType"`
	Count    int    `json:"count,omitempty"`
	Error    string `json:"error,omitempty"`
}
