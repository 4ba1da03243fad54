package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event. Services built
// outside a request (tests, batch entry points) carry no request id; those
// log "-" so the field stays greppable. Keep messages summarized, never raw
// payloads.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
