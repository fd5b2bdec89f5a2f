package model

// Notification is published after a transaction gains new records. Records
// holds every record stored for the signature, oldest first.
type Notification struct {
	Signature string        `json:"signature"`
	Slot      uint64        `json:"slot"`
	Records   []EventRecord `json:"records"`
}

// Rendered returns the printable form of each record.
func (n Notification) Rendered() []string {
	out := make([]string, 0, len(n.Records))
	for _, rec := range n.Records {
		out = append(out, rec.Rendered())
	}
	return out
}
