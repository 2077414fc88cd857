// Package fingerprint derives a stable content digest from a transaction's
// defining fields. The digest serves as a natural deduplication key: two
// imports of the same bank transaction always produce the same fingerprint,
// regardless of process, platform, or formatting of the source data.
//
// This is not a security boundary. SHA-256 is used only for its collision
// behavior; there is no adversary here.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar form used in the digest, independent
// of timezone.
const DateLayout = "2006-01-02"

// Compute returns the lowercase hex SHA-256 digest of the six transaction
// fields. Each field is length-prefixed before hashing so that no delimiter
// choice can make distinct field tuples collide.
//
// Canonical forms:
//   - amount uses decimal.Decimal.String(), the exact minimal representation
//     ("1.10" and "1.1" digest identically),
//   - date uses DateLayout,
//   - a nil reference is serialized as a bare absence marker that cannot
//     collide with any length-prefixed string, so nil, "" and "X" all digest
//     distinctly.
func Compute(text, entity, account string, amount decimal.Decimal, date time.Time, reference *string) string {
	h := sha256.New()
	writeField(h, text)
	writeField(h, entity)
	writeField(h, account)
	writeField(h, amount.String())
	writeField(h, date.Format(DateLayout))
	if reference == nil {
		io.WriteString(h, "-")
	} else {
		writeField(h, *reference)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField emits "<len>:<bytes>". Every length-prefixed field starts with a
// digit, which is what keeps the nil marker unambiguous.
func writeField(w io.Writer, s string) {
	fmt.Fprintf(w, "%d:%s", len(s), s)
}
