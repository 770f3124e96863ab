// Package auth drives interactive sign-in.
//
// A Session exchanges a secret key for a first token, lists the
// organizations visible to it, and, once the operator chooses one,
// confirms the choice with the remote service. The token issued by that
// confirmation may differ from the first one; only the final token and
// the chosen organization id are persisted, and only after confirmation
// succeeds.
package auth
