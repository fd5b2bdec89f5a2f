package geyser

import (
	"fmt"
	"strings"
)

// Commitment is the finality level requested for streamed data.
type Commitment int32

const (
	CommitmentProcessed Commitment = 0
	CommitmentConfirmed Commitment = 1
	CommitmentFinalized Commitment = 2
)

// ParseCommitment accepts processed, confirmed or finalized.
func ParseCommitment(s string) (Commitment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "processed":
		return CommitmentProcessed, nil
	case "confirmed":
		return CommitmentConfirmed, nil
	case "finalized":
		return CommitmentFinalized, nil
	default:
		return 0, fmt.Errorf("unknown commitment level: %s", s)
	}
}

func (c Commitment) String() string {
	switch c {
	case CommitmentProcessed:
		return "processed"
	case CommitmentConfirmed:
		return "confirmed"
	case CommitmentFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("commitment(%d)", int32(c))
	}
}

// TransactionFilter selects transactions for a subscription.
type TransactionFilter struct {
	Vote            bool
	Failed          bool
	Signature       string
	AccountInclude  []string
	AccountExclude  []string
	AccountRequired []string
}

// Filter is the subscription request. Transactions is keyed by filter name;
// the server echoes matching names in Update.Filters.
type Filter struct {
	Commitment   Commitment
	Transactions map[string]TransactionFilter
}

// Ping carries a keepalive id. Server pings have no id and arrive as 0.
type Ping struct {
	ID int32
}

// ControlMsg is an outbound frame on an open subscription.
type ControlMsg struct {
	Ping *Ping
}

// Pong builds the keepalive reply frame.
func Pong(id int32) ControlMsg {
	return ControlMsg{Ping: &Ping{ID: id}}
}

// UpdateKind tells which payload an Update carries.
type UpdateKind int

const (
	UpdateOther UpdateKind = iota
	UpdateTransaction
	UpdatePing
	UpdatePong
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateTransaction:
		return "transaction"
	case UpdatePing:
		return "ping"
	case UpdatePong:
		return "pong"
	default:
		return "other"
	}
}

// Update is one inbound message of a subscription.
type Update struct {
	Kind        UpdateKind
	Filters     []string
	Transaction *TransactionUpdate
	Ping        *Ping
	Pong        *Ping
}

// TransactionUpdate is a streamed transaction with its execution logs.
type TransactionUpdate struct {
	Slot       uint64
	Signatures [][]byte
	IsVote     bool
	Failed     bool
	Logs       []string
}

// Stream is an open bidirectional subscription.
type Stream interface {
	Send(msg ControlMsg) error
	Recv() (*Update, error)
	CloseSend() error
}
