package model

import (
	"fmt"
	"reflect"
)

// EventRecord is one decoded event attributed to a transaction.
type EventRecord struct {
	Slot   uint64 `json:"slot"`
	Name   string `json:"event_name"`
	Family string `json:"family"`
	Event  any    `json:"event"`
}

// Rendered formats the record as Name{field:value ...}.
func (r EventRecord) Rendered() string {
	if r.Event == nil {
		return r.Name + "{}"
	}
	return fmt.Sprintf("%s%+v", r.Name, reflect.Indirect(reflect.ValueOf(r.Event)).Interface())
}
