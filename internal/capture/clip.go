package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var mimeByExt = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// IsAudioFile reports whether the path has a supported audio extension.
func IsAudioFile(path string) bool {
	_, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// MIMETypeFor returns the MIME type for a filename, defaulting to
// audio/webm for unknown extensions (the browser recorder's container).
func MIMETypeFor(name string) string {
	if mt, ok := mimeByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return "audio/webm"
}

// LoadClip reads an audio file from disk into a Clip.
func LoadClip(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	return &Clip{
		Data:     data,
		MIMEType: MIMETypeFor(path),
		Ref:      filepath.Base(path),
	}, nil
}

// ClipFromBytes wraps uploaded bytes as a Clip.
func ClipFromBytes(data []byte, name string) *Clip {
	return &Clip{
		Data:     data,
		MIMEType: MIMETypeFor(name),
		Ref:      name,
	}
}
