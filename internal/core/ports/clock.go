package ports

import "time"

// Clock abstracts the current time so expiry boundaries are deterministic
// under test.
type Clock interface {
	Now() time.Time
}
