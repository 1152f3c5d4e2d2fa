// Package codec provides the two wire encodings spec.md section 6 calls
// for: JSON for the query input/output and human-readable dumps, and a
// canonical binary encoding (CBOR, via github.com/fxamacker/cbor/v2, the
// role the original's bincode fills) for digests, group elements, and VO
// size accounting ("vo_size (bytes of the binary-serialized VO)").
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CodecVersion represents the codec version
type CodecVersion uint16

const (
	// CurrentVersion is the current codec version
	CurrentVersion CodecVersion = 0
)

// Codec provides marshaling/unmarshaling
var Codec = &JSONCodec{}

// JSONCodec implements JSON encoding/decoding
type JSONCodec struct{}

// Marshal marshals an object to bytes
func (c *JSONCodec) Marshal(version CodecVersion, v interface{}) ([]byte, error) {
	if version != CurrentVersion {
		return nil, fmt.Errorf("unsupported codec version: %d", version)
	}
	return json.Marshal(v)
}

// Unmarshal unmarshals bytes to an object
func (c *JSONCodec) Unmarshal(data []byte, v interface{}) (CodecVersion, error) {
	err := json.Unmarshal(data, v)
	return CurrentVersion, err
}

// BinCodec is the canonical binary codec used for the on-the-wire
// serialization of digests, group elements, and VOs; group elements carry
// their own MarshalBinary/UnmarshalBinary (gnark-crypto's compressed
// affine encoding), so CBOR's byte-string support is all this layer needs
// on top.
var BinCodec = &BinaryCodec{}

// BinaryCodec implements the canonical binary encoding (spec.md section 6:
// "Canonical encodings... raw byte strings in binary").
type BinaryCodec struct{}

// Marshal encodes v to its canonical binary form.
func (c *BinaryCodec) Marshal(version CodecVersion, v interface{}) ([]byte, error) {
	if version != CurrentVersion {
		return nil, fmt.Errorf("unsupported codec version: %d", version)
	}
	return cbor.Marshal(v)
}

// Unmarshal decodes data into v.
func (c *BinaryCodec) Unmarshal(data []byte, v interface{}) (CodecVersion, error) {
	err := cbor.Unmarshal(data, v)
	return CurrentVersion, err
}

// Size returns the canonical binary-encoded size of v in bytes, the
// "vo_size (bytes of the binary-serialized VO)" OverallResult field of
// spec.md section 6.
func Size(v interface{}) (int, error) {
	b, err := cbor.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}