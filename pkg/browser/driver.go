package browser

import "context"

// Cookie is a browser cookie.
type Cookie struct {
	Name   string
	Value  string
	Domain string
}

// Driver controls one disposable browser instance. Each method is bounded by
// the context it is given.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	// WaitReady waits for selector to be in the DOM, WaitVisible for it to be shown.
	WaitReady(ctx context.Context, selector string) error
	WaitVisible(ctx context.Context, selector string) error
	Type(ctx context.Context, selector, text string) error
	Click(ctx context.Context, selector string) error
	URL(ctx context.Context) (string, error)
	Cookies(ctx context.Context) ([]Cookie, error)
	Requests() RequestLog

	// Close tears the browser down. It is safe to call more than once.
	Close() error
}

// Launcher starts a fresh Driver. Instances are never shared between calls.
type Launcher interface {
	Launch(ctx context.Context) (Driver, error)
}
