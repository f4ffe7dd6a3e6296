package bridge

import (
	"encoding/hex"

	"github.com/gofrs/uuid/v5"
)

// NewConnID - generate a fresh, unpredictable, printable, URL-safe connection
// identifier: a v4 UUID's 16 bytes (122 of its bits random) hex-encoded,
// 32 characters.
//
// The reference implementation this was adapted from uses a constant
// id for every client invocation, which collides whenever two clients talk
// to the same bridge concurrently. That defect is not reproduced
// here: every client process calls NewConnID exactly once, at startup.
func NewConnID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(id.Bytes()), nil
}
