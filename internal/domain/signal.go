package domain

import (
	"encoding/json"
	"strings"
)

// webhookPayload is the expected shape of an inbound webhook body. Extra
// fields are ignored; only "signal" matters.
type webhookPayload struct {
	Signal string `json:"signal"`
}

// ParseSignal decodes a raw webhook body into a Side. The second return
// value reports whether the body carried a valid signal; malformed JSON, a
// missing field, or an unknown value all yield false rather than an error,
// because the webhook source is untrusted and arbitrary payloads are a
// normal occurrence.
func ParseSignal(body []byte) (Side, bool) {
	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", false
	}

	switch Side(strings.ToUpper(strings.TrimSpace(p.Signal))) {
	case SideLong:
		return SideLong, true
	case SideShort:
		return SideShort, true
	default:
		return "", false
	}
}
