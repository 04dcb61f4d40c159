package minutes

import (
	"bytes"
	"testing"
)

func TestTextPayloadUnchanged(t *testing.T) {
	tests := []string{
		"",
		"Team discussed Q3 budget.",
		"multi\nline\ninput with unicode: xin chào",
	}

	for _, text := range tests {
		p := TextPayload(text)
		if !p.IsText() {
			t.Errorf("TextPayload(%q).IsText() = false", text)
		}
		if p.Text != text {
			t.Errorf("Text = %q, want %q", p.Text, text)
		}
	}
}

func TestAudioPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", []byte{}},
		{"small", []byte{0x00, 0x01, 0xFF}},
		{"webm header", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x00, 0x42, 0x86, 0x81}},
		{"all byte values", allBytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := AudioPayload(tt.raw, "audio/webm")
			if p.IsText() && len(tt.raw) > 0 {
				t.Error("AudioPayload should not be a text payload")
			}
			if p.MIMEType != "audio/webm" {
				t.Errorf("MIMEType = %q, want audio/webm", p.MIMEType)
			}

			decoded, err := p.DecodeData()
			if err != nil {
				t.Fatalf("DecodeData() error = %v", err)
			}
			if !bytes.Equal(decoded, tt.raw) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(decoded), len(tt.raw))
			}
		})
	}
}

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
