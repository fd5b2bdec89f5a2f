package anchor

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Field is one entry of an event layout. Layouts list fields in wire order.
type Field struct {
	Name   string
	decode func(d *bin.Decoder) error
	encode func(e *bin.Encoder) error
}

// DecodeFields reads every field of the layout in order.
func DecodeFields(d *bin.Decoder, layout []Field) error {
	for _, f := range layout {
		if err := f.decode(d); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

// EncodeFields writes every field of the layout in order.
func EncodeFields(e *bin.Encoder, layout []Field) error {
	for _, f := range layout {
		if err := f.encode(e); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

func U8(name string, v *uint8) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) (err error) {
			*v, err = d.ReadUint8()
			return err
		},
		encode: func(e *bin.Encoder) error { return e.WriteUint8(*v) },
	}
}

func U16(name string, v *uint16) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) (err error) {
			*v, err = d.ReadUint16(binary.LittleEndian)
			return err
		},
		encode: func(e *bin.Encoder) error { return e.WriteUint16(*v, binary.LittleEndian) },
	}
}

func U64(name string, v *uint64) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) (err error) {
			*v, err = d.ReadUint64(binary.LittleEndian)
			return err
		},
		encode: func(e *bin.Encoder) error { return e.WriteUint64(*v, binary.LittleEndian) },
	}
}

func I64(name string, v *int64) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) (err error) {
			*v, err = d.ReadInt64(binary.LittleEndian)
			return err
		},
		encode: func(e *bin.Encoder) error { return e.WriteInt64(*v, binary.LittleEndian) },
	}
}

// Bool accepts only the bytes 0 and 1.
func Bool(name string, v *bool) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) error {
			b, err := d.ReadUint8()
			if err != nil {
				return err
			}
			if b > 1 {
				return fmt.Errorf("invalid bool byte %d", b)
			}
			*v = b == 1
			return nil
		},
		encode: func(e *bin.Encoder) error {
			if *v {
				return e.WriteUint8(1)
			}
			return e.WriteUint8(0)
		},
	}
}

// Pubkey is a raw 32-byte public key.
func Pubkey(name string, v *solana.PublicKey) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) error {
			raw, err := d.ReadNBytes(solana.PublicKeyLength)
			if err != nil {
				return err
			}
			copy(v[:], raw)
			return nil
		},
		encode: func(e *bin.Encoder) error { return e.WriteBytes(v[:], false) },
	}
}

// String is a u32 length prefix followed by UTF-8 bytes.
func String(name string, v *string) Field {
	return Field{
		Name: name,
		decode: func(d *bin.Decoder) error {
			n, err := d.ReadUint32(binary.LittleEndian)
			if err != nil {
				return err
			}
			if int64(n) > int64(d.Remaining()) {
				return fmt.Errorf("length %d exceeds remaining %d bytes", n, d.Remaining())
			}
			if n == 0 {
				*v = ""
				return nil
			}
			raw, err := d.ReadNBytes(int(n))
			if err != nil {
				return err
			}
			if !utf8.Valid(raw) {
				return fmt.Errorf("invalid utf-8")
			}
			*v = string(raw)
			return nil
		},
		encode: func(e *bin.Encoder) error {
			if err := e.WriteUint32(uint32(len(*v)), binary.LittleEndian); err != nil {
				return err
			}
			return e.WriteBytes([]byte(*v), false)
		},
	}
}
