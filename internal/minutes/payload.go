package minutes

import "encoding/base64"

// Payload is the input of a single generation request. Exactly one of the
// two forms is set: plain text, or base64-encoded binary data with its MIME
// type.
type Payload struct {
	Text     string
	Data     string
	MIMEType string
}

// IsText reports whether the payload carries the plain-text form.
func (p Payload) IsText() bool {
	return p.Data == ""
}

// TextPayload wraps user text unchanged.
func TextPayload(text string) Payload {
	return Payload{Text: text}
}

// AudioPayload encodes raw audio bytes for inline transport. The encoding is
// standard base64 so the provider can reconstruct the original bytes exactly.
func AudioPayload(raw []byte, mimeType string) Payload {
	return Payload{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MIMEType: mimeType,
	}
}

// DecodeData reverses AudioPayload's encoding.
func (p Payload) DecodeData() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Data)
}
