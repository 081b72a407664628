package browser

import "errors"

var (
	// ErrLaunch means the browser could not be started. It is the only
	// failure Acquire returns as an error.
	ErrLaunch = errors.New("browser could not be started")

	// ErrFormNotFound means the SSO login form never showed up.
	ErrFormNotFound = errors.New("login form not found")

	// ErrAuthRejected means the portal did not redirect into the
	// authenticated area after the form was submitted.
	ErrAuthRejected = errors.New("login was not accepted")

	// ErrTokenNotFound means login succeeded but no session cookie was set.
	ErrTokenNotFound = errors.New("session cookie not found")
)
