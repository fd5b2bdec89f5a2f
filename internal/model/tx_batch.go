package model

// UnknownSignature stands in for a transaction update without signatures.
const UnknownSignature = "unknown"

// TxBatch is the log output of one transaction as delivered by a stream.
type TxBatch struct {
	Slot      uint64   `json:"slot"`
	Signature string   `json:"signature"`
	Logs      []string `json:"logs"`
}
