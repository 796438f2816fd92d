package kafka

import "encoding/json"

// Envelope is the only wire format this system defines: the JSON payload the
// producer writes and the consumer tries to read back.
type Envelope struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// DecodeEnvelope attempts to interpret a payload as an envelope. The second
// return value reports whether decoding succeeded; a false means the caller
// should render the raw bytes instead. Decode failure is a rendering mode,
// never an error.
func DecodeEnvelope(payload []byte) (Envelope, bool) {
	var envelope Envelope

	if err := json.Unmarshal(payload, &envelope); err != nil {
		return Envelope{}, false
	}

	return envelope, true
}
