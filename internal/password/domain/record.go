package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// AlgorithmTag identifies the hashing primitive in the record string.
const AlgorithmTag = "argon2id"

// Record is the parsed form of a password hash string:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<parallelism>$<base64(salt)>$<base64(hash)>
//
// The string is fully self-describing, so records issued under different cost
// parameters all verify correctly against their original passwords.
type Record struct {
	Params Params
	Salt   []byte
	Hash   []byte
}

// Encode renders the record in its string form. Salt and hash use unpadded
// standard base64, following the PHC string convention.
func (r Record) Encode() string {
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmTag,
		Version,
		r.Params.Memory,
		r.Params.Time,
		r.Params.Parallelism,
		base64.RawStdEncoding.EncodeToString(r.Salt),
		base64.RawStdEncoding.EncodeToString(r.Hash),
	)
}

// ParseRecord parses a record string back into its components.
// Returns ErrMalformedRecord for anything that does not match the format.
func ParseRecord(encoded string) (Record, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != AlgorithmTag {
		return Record{}, ErrMalformedRecord
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != Version {
		return Record{}, ErrMalformedRecord
	}

	record := Record{}
	_, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&record.Params.Memory,
		&record.Params.Time,
		&record.Params.Parallelism,
	)
	if err != nil {
		return Record{}, ErrMalformedRecord
	}

	record.Salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Record{}, ErrMalformedRecord
	}
	record.Hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Record{}, ErrMalformedRecord
	}

	record.Params.SaltLength = uint32(len(record.Salt))
	record.Params.KeyLength = uint32(len(record.Hash))

	return record, nil
}
