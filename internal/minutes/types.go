package minutes

import "time"

// InputMode selects which kind of input the session accepts.
type InputMode string

const (
	ModeText   InputMode = "text"
	ModeUpload InputMode = "upload"
	ModeRecord InputMode = "record"
)

// Valid reports whether the mode is one of the known input modes.
func (m InputMode) Valid() bool {
	switch m {
	case ModeText, ModeUpload, ModeRecord:
		return true
	}
	return false
}

// FeatureKind selects a derivative document to produce from completed minutes.
type FeatureKind string

const (
	FeatureFollowUp    FeatureKind = "followup"
	FeatureBroadcast   FeatureKind = "broadcast"
	FeatureActionItems FeatureKind = "actionItems"
	FeatureAttendance  FeatureKind = "attendance"
)

// Valid reports whether the feature kind is part of the fixed set.
func (f FeatureKind) Valid() bool {
	switch f {
	case FeatureFollowUp, FeatureBroadcast, FeatureActionItems, FeatureAttendance:
		return true
	}
	return false
}

// Kind tags a result as either the canonical minutes or one of the
// derivative documents.
type Kind string

const KindStandard Kind = "standard"

// KindFor maps a feature kind to the result kind it produces.
func KindFor(f FeatureKind) Kind {
	return Kind(f)
}

// Result is a completed document. It is immutable once created; a derivative
// request produces a brand-new Result rather than mutating the old one.
type Result struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	LogID     string    `json:"logId"`
}
