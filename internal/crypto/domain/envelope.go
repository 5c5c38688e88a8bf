package domain

import (
	"encoding/hex"
	"strings"
)

const (
	// DefaultPrefix is the literal prefix identifying envelopes produced by
	// this toolkit when no custom prefix is configured.
	DefaultPrefix = "cryptokit"

	// PrefixSeparator separates the prefix from the hex-encoded fields.
	PrefixSeparator = "+"

	// FieldSeparator separates the hex-encoded envelope fields.
	FieldSeparator = ","

	// FormatVersion identifies the current envelope format. Unrecognized
	// versions are rejected rather than mis-decoded.
	FormatVersion = byte(0x01)
)

// Envelope is the ciphertext-at-rest representation produced by encryption:
// format version, fresh nonce, authentication tag, and ciphertext, all
// hex-encoded into one self-describing string. An Envelope is immutable once
// produced and never contains key material.
type Envelope struct {
	Prefix     string
	Version    byte
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

// Encode renders the envelope in its text form:
//
//	<prefix>+<hex(version)>,<hex(nonce)>,<hex(tag)>,<hex(ciphertext)>
func (e Envelope) Encode() string {
	var b strings.Builder
	b.WriteString(e.Prefix)
	b.WriteString(PrefixSeparator)
	b.WriteString(hex.EncodeToString([]byte{e.Version}))
	b.WriteString(FieldSeparator)
	b.WriteString(hex.EncodeToString(e.Nonce))
	b.WriteString(FieldSeparator)
	b.WriteString(hex.EncodeToString(e.Tag))
	b.WriteString(FieldSeparator)
	b.WriteString(hex.EncodeToString(e.Ciphertext))
	return b.String()
}

// ParseEnvelope parses the text form back into an Envelope.
//
// When ignorePrefix is false the string must start with exactly
// prefix+PrefixSeparator; when true, everything up to and including the first
// PrefixSeparator is discarded instead. Returns ErrInvalidEnvelope for any
// string that does not match the four-field shape or carries an unrecognized
// version.
func ParseEnvelope(encoded, prefix string, ignorePrefix bool) (Envelope, error) {
	rest := encoded
	if ignorePrefix {
		if _, after, found := strings.Cut(encoded, PrefixSeparator); found {
			rest = after
		}
	} else {
		want := prefix + PrefixSeparator
		if !strings.HasPrefix(encoded, want) {
			return Envelope{}, ErrInvalidEnvelope
		}
		rest = encoded[len(want):]
	}

	fields := strings.Split(rest, FieldSeparator)
	if len(fields) != 4 {
		return Envelope{}, ErrInvalidEnvelope
	}

	decoded := make([][]byte, 4)
	for i, field := range fields {
		raw, err := hex.DecodeString(field)
		if err != nil {
			return Envelope{}, ErrInvalidEnvelope
		}
		decoded[i] = raw
	}

	if len(decoded[0]) != 1 || decoded[0][0] != FormatVersion {
		return Envelope{}, ErrInvalidEnvelope
	}

	return Envelope{
		Prefix:     prefix,
		Version:    decoded[0][0],
		Nonce:      decoded[1],
		Tag:        decoded[2],
		Ciphertext: decoded[3],
	}, nil
}
