package capture

import "context"

// Recorder captures audio from the host's input device. The device handle is
// held from Start until Stop and released exactly once.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (*Clip, error)
}

// Clip is a captured or uploaded audio payload.
type Clip struct {
	Data     []byte
	MIMEType string
	Ref      string
}
