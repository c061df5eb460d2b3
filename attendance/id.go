package attendance

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

func newID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), rand.Reader).String()
}
