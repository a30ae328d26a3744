package browser

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/playwright-community/playwright-go"
)

// Session owns one headless browser with its context and page for the
// duration of a single verification run. Ownership is strict containment:
// playwright owns the browser, the browser owns the context, the context
// owns the page. Close releases all of them.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Launch installs the Chromium driver if necessary, starts Playwright, and
// builds a fresh browser, context, and page. On any partial failure the
// resources acquired so far are released before returning.
func Launch(opts SessionOptions) (*Session, error) {
	opts = opts.withDefaults()

	// Driver output is discarded so it cannot interleave with progress lines
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(opts.Timeout)

	return &Session{
		pw:      pw,
		browser: b,
		context: ctx,
		page:    page,
	}, nil
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	gotoOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := s.page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	return nil
}

// WaitForRole waits up to timeout milliseconds for the element with the
// given ARIA role and accessible name to become visible. An expired wait
// is reported as OutcomeNotFound with a nil error; only genuine automation
// failures are returned as errors.
func (s *Session) WaitForRole(role, name string, timeout float64) (LocateOutcome, error) {
	if s.closed.Load() {
		return OutcomeNotFound, ErrSessionClosed
	}

	locator := s.page.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{
		Name: name,
	})

	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeout),
	})
	if err == nil {
		return OutcomeFound, nil
	}
	if IsTimeout(err) {
		return OutcomeNotFound, nil
	}
	return OutcomeNotFound, fmt.Errorf("locating %s %q failed: %w", role, name, err)
}

// ClickRole clicks the element with the given ARIA role and accessible name.
func (s *Session) ClickRole(role, name string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	locator := s.page.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{
		Name: name,
	})

	if err := locator.Click(); err != nil {
		return fmt.Errorf("click on %s %q failed: %w", role, name, err)
	}

	return nil
}

// TextVisible reports whether an element containing the given text is
// currently visible. An element that does not exist at all and one that
// exists but is hidden both report false.
func (s *Session) TextVisible(text string) (bool, error) {
	if s.closed.Load() {
		return false, ErrSessionClosed
	}

	// First() keeps the probe valid when the text matches more than once
	visible, err := s.page.GetByText(text).First().IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility check for %q failed: %w", text, err)
	}

	return visible, nil
}

// Screenshot captures the entire scrollable page as a PNG at path.
func (s *Session) Screenshot(path string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}

	return nil
}

// VisibleText returns the page's visible text, cleaned of scripts, styles,
// and hidden elements, truncated to maxLength characters. Used for failure
// diagnostics alongside the error screenshot.
func (s *Session) VisibleText(maxLength int) (string, error) {
	if s.closed.Load() {
		return "", ErrSessionClosed
	}

	content, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	return visibleText(content, maxLength)
}

// URL returns the page's current URL.
func (s *Session) URL() string {
	return s.page.URL()
}

// Close releases the page, context, browser, and Playwright driver.
// It is guaranteed to run at most once; later calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)

		// Page and context errors do not block the remaining cleanup
		_ = s.page.Close()
		_ = s.context.Close()

		if err := s.browser.Close(); err != nil {
			s.closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		if err := s.pw.Stop(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	})
	return s.closeErr
}
