package emailcode

import "errors"

var (
	// ErrCodeInvalid is returned when a code does not exist or was already
	// redeemed. Absent and redeemed codes are deliberately indistinguishable.
	ErrCodeInvalid = errors.New("invalid or already redeemed code")
)
