package encoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrUnsupportedRecordType is returned by Encode for Record implementations
// that have no layout function.
var ErrUnsupportedRecordType = errors.New("unsupported record type")

// Payload is the 0x-prefixed hex encoding of one record.
type Payload string

// String returns the payload hex.
func (p Payload) String() string {
	return string(p)
}

// Bytes decodes the payload. Payloads produced by Encode always decode.
func (p Payload) Bytes() []byte {
	return hexutil.MustDecode(string(p))
}

// Digest returns keccak256 over the payload bytes.
func (p Payload) Digest() common.Hash {
	return crypto.Keccak256Hash(p.Bytes())
}

// Encode lays out a record in the word layout its schema was registered with.
func Encode(rec Record) (Payload, error) {
	switch r := rec.(type) {
	case BrandIdentity:
		return encodeBrandIdentity(&r)
	case *BrandIdentity:
		return encodeBrandIdentity(r)
	case ContentCheck:
		return encodeContentCheck(&r)
	case *ContentCheck:
		return encodeContentCheck(r)
	case BrandScore:
		return encodeBrandScore(&r)
	case *BrandScore:
		return encodeBrandScore(r)
	case VoiceFingerprint:
		return encodeVoiceFingerprint(&r)
	case *VoiceFingerprint:
		return encodeVoiceFingerprint(r)
	case BrandHealth:
		return encodeBrandHealth(&r)
	case *BrandHealth:
		return encodeBrandHealth(r)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedRecordType, rec)
	}
}

// bytes32 brandHash, string name, uint256 version, uint256 timestamp
func encodeBrandIdentity(r *BrandIdentity) (Payload, error) {
	var l layout
	if err := l.fixedBytes("brandHash", r.BrandHash); err != nil {
		return "", err
	}
	l.str(r.Name)
	l.uint(r.Version)
	l.uint(r.Timestamp)
	return l.payload(), nil
}

// bytes32 contentHash, bytes32 brandHash, uint256 alignmentScore,
// uint256 authenticityScore, uint256 timestamp
func encodeContentCheck(r *ContentCheck) (Payload, error) {
	var l layout
	if err := l.fixedBytes("contentHash", r.ContentHash); err != nil {
		return "", err
	}
	if err := l.fixedBytes("brandHash", r.BrandHash); err != nil {
		return "", err
	}
	l.uint(r.AlignmentScore)

	var authenticity uint64
	if r.AuthenticityScore != nil {
		authenticity = *r.AuthenticityScore
	}
	l.uint(authenticity)
	l.uint(r.Timestamp)
	return l.payload(), nil
}

// uint256 overallScore, uint256 x4 sub-scores, uint256 timestamp,
// string username, string archetype
func encodeBrandScore(r *BrandScore) (Payload, error) {
	var l layout
	l.uint(r.OverallScore)
	for _, sub := range r.SubScores {
		l.uint(sub)
	}
	l.uint(r.Timestamp)
	l.str(r.Username)
	l.str(r.Archetype)
	return l.payload(), nil
}

// bytes32 brandHash, uint256 formality, uint256 warmth, uint256 energy,
// uint256 confidence, uint256 timestamp, string tone, string vocabulary
func encodeVoiceFingerprint(r *VoiceFingerprint) (Payload, error) {
	var l layout
	if err := l.fixedBytes("brandHash", r.BrandHash); err != nil {
		return "", err
	}
	l.uint(r.Formality)
	l.uint(r.Warmth)
	l.uint(r.Energy)
	l.uint(r.Confidence)
	l.uint(r.Timestamp)
	l.str(r.Tone)
	l.str(r.Vocabulary)
	return l.payload(), nil
}

// bytes32 brandHash, uint256 healthScore, uint256 previousScore,
// uint256 timestamp, string username, string grade, string summary
func encodeBrandHealth(r *BrandHealth) (Payload, error) {
	var l layout
	if err := l.fixedBytes("brandHash", r.BrandHash); err != nil {
		return "", err
	}
	l.uint(r.HealthScore)
	l.uint(r.PreviousScore)
	l.uint(r.Timestamp)
	l.str(r.Username)
	l.str(r.Grade)
	l.str(r.Summary)
	return l.payload(), nil
}

// layout accumulates head slots and tail payloads for one record.
// A slot with tail >= 0 is an offset slot pointing at tails[tail].
type layout struct {
	slots []slot
	tails []string
}

type slot struct {
	word string
	tail int
}

func (l *layout) word(w string) {
	l.slots = append(l.slots, slot{word: w, tail: -1})
}

func (l *layout) uint(v uint64) {
	l.word(EncodeUint64(v))
}

func (l *layout) fixedBytes(field, value string) error {
	w, err := EncodeFixedBytes(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	l.word(w)
	return nil
}

func (l *layout) str(s string) {
	l.slots = append(l.slots, slot{tail: len(l.tails)})
	l.tails = append(l.tails, EncodeString(s))
}

// payload resolves offsets and concatenates head and tail. Offsets are
// measured from the start of the head, so the first tail starts right after
// the last head word and each following tail after its predecessor.
func (l *layout) payload() Payload {
	offsets := make([]int, len(l.tails))
	next := len(l.slots) * WordSize
	for i, t := range l.tails {
		offsets[i] = next
		next += len(t) / 2
	}

	var b strings.Builder
	b.Grow(2 + 2*next)
	b.WriteString("0x")
	for _, s := range l.slots {
		if s.tail >= 0 {
			b.WriteString(EncodeUint64(uint64(offsets[s.tail])))
			continue
		}
		b.WriteString(s.word)
	}
	for _, t := range l.tails {
		b.WriteString(t)
	}
	return Payload(b.String())
}
