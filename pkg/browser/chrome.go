package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeLauncher starts a headless Chrome through chromedp.
type ChromeLauncher struct {
	// ExecPath overrides the Chrome binary; empty means search PATH.
	ExecPath  string
	UserAgent string
}

// Launch starts Chrome and opens a blank tab with network events enabled.
func (l ChromeLauncher) Launch(ctx context.Context) (Driver, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if path := strings.TrimSpace(l.ExecPath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	if ua := strings.TrimSpace(l.UserAgent); ua != "" {
		opts = append(opts, chromedp.UserAgent(ua))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	d := &chromeDriver{
		ctx:           browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
		requests:      NewRecorder(),
	}

	chromedp.ListenTarget(browserCtx, func(ev any) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			if e.Request != nil {
				d.requests.Record(string(e.RequestID), e.Request.URL, e.Request.Headers)
			}
		case *network.EventRequestWillBeSentExtraInfo:
			d.requests.Merge(string(e.RequestID), e.Headers)
		}
	})

	// The first Run starts the browser process.
	if err := chromedp.Run(browserCtx, network.Enable()); err != nil {
		d.Close()
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	return d, nil
}

type chromeDriver struct {
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
	requests      *Recorder

	closeOnce sync.Once
	closeErr  error
}

// run executes actions in the browser tab while honoring ctx. Cancelling a
// context derived from the tab does not close the tab itself.
func (d *chromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (d *chromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

func (d *chromeDriver) WaitVisible(ctx context.Context, selector string) error {
	return d.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (d *chromeDriver) WaitReady(ctx context.Context, selector string) error {
	return d.run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

func (d *chromeDriver) Type(ctx context.Context, selector, text string) error {
	return d.run(ctx, chromedp.SendKeys(selector, text, chromedp.ByQuery))
}

func (d *chromeDriver) Click(ctx context.Context, selector string) error {
	return d.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (d *chromeDriver) URL(ctx context.Context) (string, error) {
	var u string
	err := d.run(ctx, chromedp.Location(&u))
	return u, err
}

func (d *chromeDriver) Cookies(ctx context.Context) ([]Cookie, error) {
	var raw []*network.Cookie
	err := d.run(ctx, chromedp.ActionFunc(func(c context.Context) error {
		var err error
		raw, err = network.GetCookies().Do(c)
		return err
	}))
	if err != nil {
		return nil, err
	}

	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, Cookie{Name: c.Name, Value: c.Value, Domain: c.Domain})
	}
	return cookies, nil
}

func (d *chromeDriver) Requests() RequestLog {
	return d.requests
}

// Close closes the tab, waits for the browser to exit and releases the allocator.
func (d *chromeDriver) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = chromedp.Cancel(d.ctx)
		d.cancelBrowser()
		d.cancelAlloc()
	})
	return d.closeErr
}
