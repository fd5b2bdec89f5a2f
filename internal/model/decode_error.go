package model

// DecodeError records an input line the offline decoder could not use.
type DecodeError struct {
	Line      int    `json:"line"`
	Signature string `json:"signature,omitempty"`
	Error     string `json:"error"`
}
