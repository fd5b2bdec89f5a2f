package anchor

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// ErrMalformed is returned when a payload does not fit the variant schema.
var ErrMalformed = errors.New("malformed event payload")

// Event is a borsh-encoded record emitted by an Anchor program.
type Event interface {
	Discriminator() Discriminator
	MarshalWithEncoder(encoder *bin.Encoder) error
	UnmarshalWithDecoder(decoder *bin.Decoder) error
}

// Codec binds an event variant to its tag and a constructor.
type Codec struct {
	Name          string
	Family        string
	Discriminator Discriminator
	New           func() Event
}

// Matches checks the 8-byte tag of a record against the codec.
func (c Codec) Matches(tag []byte) bool {
	return c.Discriminator.Matches(tag)
}

// Decode deserializes payload (the record without its tag).
// The whole payload must be consumed.
func (c Codec) Decode(payload []byte) (ev Event, err error) {
	if c.New == nil {
		return nil, fmt.Errorf("%s: no constructor", c.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			ev = nil
			err = fmt.Errorf("%w: %s: %v", ErrMalformed, c.Name, r)
		}
	}()

	out := c.New()
	decoder := bin.NewBorshDecoder(payload)
	if err := out.UnmarshalWithDecoder(decoder); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, c.Name, err)
	}
	if rest := decoder.Remaining(); rest != 0 {
		return nil, fmt.Errorf("%w: %s: %d trailing bytes", ErrMalformed, c.Name, rest)
	}
	return out, nil
}

// Encode renders an event as a tagged record.
func Encode(ev Event) ([]byte, error) {
	var buf bytes.Buffer
	tag := ev.Discriminator()
	buf.Write(tag[:])
	if err := ev.MarshalWithEncoder(bin.NewBorshEncoder(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Split separates the tag from the payload of a record.
func Split(record []byte) (tag, payload []byte, ok bool) {
	if len(record) < DiscriminatorSize {
		return nil, nil, false
	}
	return record[:DiscriminatorSize], record[DiscriminatorSize:], true
}
