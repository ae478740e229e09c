package dns

// Size limits for inbound messages. The 2048-byte receive ceiling is
// MaxMessageSize in message.go.
const (
	// MinQueryBytes is the smallest buffer that could possibly hold a
	// header. ParseQuery rejects anything shorter; the TCP listener also
	// drops reads shorter than a header plus its length prefix before
	// decoding.
	MinQueryBytes = HeaderSize
)
