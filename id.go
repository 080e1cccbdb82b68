package rand

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ULID identifiers carry 10 bytes of entropy next to a millisecond
// timestamp. The entropy here is the generator's byte stream, so for a
// fixed seed and timestamp the identifiers are fully reproducible. That
// makes stable test fixtures that still look like production IDs.

// ULID returns an identifier stamped with the current wall clock and
// 10 bytes drawn from the generator.
func (g *Gen) ULID() ulid.ULID { return g.ULIDAt(time.Now()) }

// ULIDAt returns an identifier stamped with t and 10 bytes drawn from
// the generator.
func (g *Gen) ULIDAt(t time.Time) ulid.ULID {
	return ulid.MustNew(ulid.Timestamp(t), g)
}

// ULID returns an identifier stamped with the current wall clock and
// 10 bytes drawn from the generator.
func (g *Gen32) ULID() ulid.ULID { return g.ULIDAt(time.Now()) }

// ULIDAt returns an identifier stamped with t and 10 bytes drawn from
// the generator.
func (g *Gen32) ULIDAt(t time.Time) ulid.ULID {
	return ulid.MustNew(ulid.Timestamp(t), g)
}
