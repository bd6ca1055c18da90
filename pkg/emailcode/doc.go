// Package emailcode manages the one-time codes used by the email
// verification and password reset flows.
//
// A code is 32 bytes of crypto/rand output, base64url-encoded, bound to a
// single user. Each user holds at most one outstanding code at a time; the
// verification and reset flows share that slot, and issuing a new code
// replaces the previous one.
//
// The lifecycle is issue -> redeem. Issue emails the link first and persists
// the code only after a successful send, so a delivery failure cannot leave
// an unredeemable code behind. Redeem deletes the code atomically with the
// lookup, making it single-use even under concurrent redemption; the caller
// is responsible for applying the state change the code authorizes (flipping
// the verified flag or replacing the password hash).
//
// Codes do not expire. The created_at column is kept so a TTL can be added
// without a migration.
package emailcode
