package notify

import "pumpScope/internal/model"

// Sink receives aggregator notifications.
type Sink interface {
	Notify(n model.Notification) error
}
