package common

import (
	uuid "github.com/nu7hatch/gouuid"
)

// GenUUID returns a random identifier used to correlate the log lines of one run.
func GenUUID() string {
	// uuid.NewV4() only fails if the random source fails, which crypto/rand
	// does not do in practice, so keep trying rather than surfacing an error.
	for {
		if id, err := uuid.NewV4(); err == nil {
			return id.String()
		}
	}
}
