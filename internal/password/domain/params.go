// Package domain defines the password hashing types: Argon2id cost
// parameters, the self-describing record format, and password errors.
package domain

import (
	validation "github.com/jellydator/validation"
)

// Version is the Argon2 version embedded in every record (0x13).
const Version = 19

// Params holds the Argon2id cost parameters embedded in every record.
//
// Records remain self-describing: verification always uses the parameters
// embedded in the record, so instances configured with different policies can
// read each other's records.
type Params struct {
	// Memory is the memory cost in KiB.
	Memory uint32
	// Time is the number of iterations.
	Time uint32
	// Parallelism is the number of lanes.
	Parallelism uint8
	// SaltLength is the length in bytes of the random per-record salt.
	SaltLength uint32
	// KeyLength is the length in bytes of the derived hash.
	KeyLength uint32
}

// DefaultParams returns the default cost parameters: the RFC 9106
// second recommended option (64 MiB memory, 3 iterations, 4 lanes).
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate checks the cost parameters are within sane bounds.
func (p Params) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Memory, validation.Required, validation.Min(uint32(8*1024))),
		validation.Field(&p.Time, validation.Required, validation.Min(uint32(1))),
		validation.Field(&p.Parallelism, validation.Required, validation.Min(uint8(1))),
		validation.Field(&p.SaltLength, validation.Required, validation.Min(uint32(8))),
		validation.Field(&p.KeyLength, validation.Required, validation.Min(uint32(16))),
	)
}

// CostEqual reports whether two parameter sets have the same cost settings.
// Salt and key lengths only affect newly issued records, so they are not part
// of the comparison.
func (p Params) CostEqual(other Params) bool {
	return p.Memory == other.Memory &&
		p.Time == other.Time &&
		p.Parallelism == other.Parallelism
}
