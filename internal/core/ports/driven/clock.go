package driven

import "time"

// Clock supplies the current time for createdAt/updatedAt stamps.
type Clock interface {
	Now() time.Time
}
