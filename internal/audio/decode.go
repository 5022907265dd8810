package audio

import "encoding/base64"

var payloadEncoding = base64.StdEncoding.Strict()

// DecodePayload turns a base64 string into the exact bytes it encodes. On
// invalid input no partial result is returned.
func DecodePayload(payload string) ([]byte, error) {
	data, err := payloadEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

// EncodePayload is the inverse of DecodePayload.
func EncodePayload(data []byte) string {
	return payloadEncoding.EncodeToString(data)
}
