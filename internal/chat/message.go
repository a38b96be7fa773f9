// Package chat implements the conversation core of the shopcopilot client:
// an append-only message log, the pending-attachment manager, and the session
// controller that drives exactly one backend request per turn.
package chat

import "encoding/json"

// Role identifies the author of a message record.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// MessageRecord is a single entry in the conversation log. Records are
// immutable once appended; their identity is their position in the log.
type MessageRecord struct {
	Role Role
	Text string

	// Image is the local preview of the attachment that was sent with a
	// user message. Display-only, never sent back over the network.
	Image *Preview

	// Products holds the gallery attached to a bot reply. A nil or empty
	// slice both mean no gallery.
	Products []ProductResult
}

// ProductResult is one matched product from a bot reply. Immutable after
// decoding; the renderer never modifies it.
type ProductResult struct {
	Title    string
	Price    string
	ImageURL string
	Source   string
	Link     string
}

// UnmarshalJSON decodes a product payload. The backend is inconsistent about
// key names across endpoints ("title" vs "name", "link" vs "url"), so both
// spellings are accepted, with the first taking precedence.
func (p *ProductResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title  string `json:"title"`
		Name   string `json:"name"`
		Price  string `json:"price"`
		Image  string `json:"image"`
		Link   string `json:"link"`
		URL    string `json:"url"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Title = raw.Title
	if p.Title == "" {
		p.Title = raw.Name
	}
	p.Link = raw.Link
	if p.Link == "" {
		p.Link = raw.URL
	}
	p.Price = raw.Price
	p.ImageURL = raw.Image
	p.Source = raw.Source
	return nil
}

// TurnRequest is the outbound payload for one turn, composed by the session
// controller and encoded by the transport.
type TurnRequest struct {
	Message   string
	ImageName string
	ImageData []byte

	// Token is the opaque auth token, empty in anonymous mode. Its
	// contents are never inspected client-side.
	Token string
}

// TurnReply is the decoded backend response for one turn.
type TurnReply struct {
	Text     string
	Products []ProductResult
}
