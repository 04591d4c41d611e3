// Package accounts grants the admin role to user accounts.
//
// The capability is a direct request/response call, so unlike the
// notification path its failures are returned to the caller as typed
// errors: ErrUnauthenticated, ErrInvalidArgument and ErrInternal.
//
// Over HTTP:
//
//	POST /v1/accounts/grant-admin
//	Authorization: Bearer <caller-uid>:<secret>
//	{"uid": "target-account"}
//
// Callers are configured with ADMIN_TOKENS as a comma-separated list of
// uid:bcrypt-hash pairs. Generate a hash with:
//
//	htpasswd -bnBC 10 "" secret | tr -d ':\n'
package accounts
