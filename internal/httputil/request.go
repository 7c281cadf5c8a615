package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultBodyLimit = 2 << 20

// bodyLimit caps request body size. Set once at startup via SetBodyLimit,
// before the server accepts traffic.
var bodyLimit int64 = defaultBodyLimit

// SetBodyLimit raises the request body cap so a payload carrying an
// attachment of maxPayload bytes still parses. JSON string escaping can
// double the wire size of the content field, plus a little slack for the
// rest of the envelope.
func SetBodyLimit(maxPayload int64) {
	limit := 2*maxPayload + 64<<10
	if limit < defaultBodyLimit {
		limit = defaultBodyLimit
	}
	bodyLimit = limit
}

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error
// messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
