package encoder

import (
	"encoding/json"
	"fmt"

	"github.com/ruteri/brand-attestations/interfaces"
)

// Record is one typed attestation record. The concrete types below are the
// only implementations Encode accepts.
type Record interface {
	Type() interfaces.RecordType
}

// BrandIdentity attests the canonical identity of a brand.
type BrandIdentity struct {
	BrandHash string `json:"brandHash"`
	Name      string `json:"name"`
	Version   uint64 `json:"version"`
	Timestamp uint64 `json:"timestamp"`
}

// ContentCheck attests how well a piece of content matches a brand.
// A nil AuthenticityScore is encoded as zero.
type ContentCheck struct {
	ContentHash       string  `json:"contentHash"`
	BrandHash         string  `json:"brandHash"`
	AlignmentScore    uint64  `json:"alignmentScore"`
	AuthenticityScore *uint64 `json:"authenticityScore,omitempty"`
	Timestamp         uint64  `json:"timestamp"`
}

// BrandScore attests an overall brand score and its four sub-scores
// (clarity, consistency, differentiation, engagement).
type BrandScore struct {
	OverallScore uint64    `json:"overallScore"`
	SubScores    [4]uint64 `json:"subScores"`
	Timestamp    uint64    `json:"timestamp"`
	Username     string    `json:"username"`
	Archetype    string    `json:"archetype"`
}

// VoiceFingerprint attests the measured tone-of-voice profile of a brand.
type VoiceFingerprint struct {
	BrandHash  string `json:"brandHash"`
	Formality  uint64 `json:"formality"`
	Warmth     uint64 `json:"warmth"`
	Energy     uint64 `json:"energy"`
	Confidence uint64 `json:"confidence"`
	Timestamp  uint64 `json:"timestamp"`
	Tone       string `json:"tone"`
	Vocabulary string `json:"vocabulary"`
}

// BrandHealth attests a periodic brand health check.
type BrandHealth struct {
	BrandHash     string `json:"brandHash"`
	HealthScore   uint64 `json:"healthScore"`
	PreviousScore uint64 `json:"previousScore"`
	Timestamp     uint64 `json:"timestamp"`
	Username      string `json:"username"`
	Grade         string `json:"grade"`
	Summary       string `json:"summary"`
}

func (BrandIdentity) Type() interfaces.RecordType    { return interfaces.BrandIdentityType }
func (ContentCheck) Type() interfaces.RecordType     { return interfaces.ContentCheckType }
func (BrandScore) Type() interfaces.RecordType       { return interfaces.BrandScoreType }
func (VoiceFingerprint) Type() interfaces.RecordType { return interfaces.VoiceFingerprintType }
func (BrandHealth) Type() interfaces.RecordType      { return interfaces.BrandHealthType }

// DecodeRecord unmarshals the JSON form of a record of the given type.
func DecodeRecord(rt interfaces.RecordType, data []byte) (Record, error) {
	switch rt {
	case interfaces.BrandIdentityType:
		return decodeInto[BrandIdentity](data)
	case interfaces.ContentCheckType:
		return decodeInto[ContentCheck](data)
	case interfaces.BrandScoreType:
		return decodeInto[BrandScore](data)
	case interfaces.VoiceFingerprintType:
		return decodeInto[VoiceFingerprint](data)
	case interfaces.BrandHealthType:
		return decodeInto[BrandHealth](data)
	default:
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnknownRecordType, rt)
	}
}

func decodeInto[R Record](data []byte) (Record, error) {
	var rec R
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("could not parse %s record: %w", rec.Type(), err)
	}
	return rec, nil
}
