package audio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	data, err := DecodePayload("AID/fw==")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00, 0x80, 0xFF, 0x7F}) {
		t.Fatalf("unexpected bytes % x", data)
	}
}

func TestDecodePayloadInvalid(t *testing.T) {
	for _, in := range []string{"not base64!", "AID/fw=", "AID/fx=="} {
		data, err := DecodePayload(in)
		if data != nil {
			t.Fatalf("expected no partial result for %q, got % x", in, data)
		}
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("expected DecodeError for %q, got %v", in, err)
		}
	}
}

func TestDecodePayloadRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x01},
		{0x00, 0x80},
		{0xde, 0xad, 0xbe, 0xef, 0x42},
		bytes.Repeat([]byte{0x7f, 0x80, 0x00}, 100),
	}
	for _, raw := range inputs {
		encoded := base64.StdEncoding.EncodeToString(raw)
		data, err := DecodePayload(encoded)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", encoded, err)
		}
		if got := EncodePayload(data); got != encoded {
			t.Fatalf("round trip mismatch: %q != %q", got, encoded)
		}
	}
}
