package anchor

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// DiscriminatorSize is the length of the tag prefixed to every event record.
const DiscriminatorSize = 8

// Discriminator identifies an event variant inside a binary record.
type Discriminator [DiscriminatorSize]byte

// EventDiscriminator derives the Anchor event tag: sha256("event:<name>")[:8].
func EventDiscriminator(name string) Discriminator {
	sum := sha256.Sum256([]byte("event:" + name))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// Matches reports whether tag is exactly this discriminator.
func (d Discriminator) Matches(tag []byte) bool {
	return len(tag) == DiscriminatorSize && bytes.Equal(d[:], tag)
}

func (d Discriminator) String() string {
	return hex.EncodeToString(d[:])
}
