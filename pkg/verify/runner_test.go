package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexbusiness-systems/jubeeloveai/pkg/browser"
	"github.com/apexbusiness-systems/jubeeloveai/pkg/config"
	"github.com/apexbusiness-systems/jubeeloveai/pkg/logging"
)

// fakeSession is a scripted stand-in for a browser session. It records
// every operation in order so tests can assert on the exact sequence.
type fakeSession struct {
	buttonOutcome  browser.LocateOutcome
	buttonErr      error
	headingOutcome browser.LocateOutcome
	headingErr     error
	removedVisible bool
	removedErr     error
	navigateErr    error
	clickErr       error
	screenshotErrs map[string]error

	ops         []string
	screenshots []string
	closeCount  int
}

func (f *fakeSession) Navigate(url string, opts browser.NavigateOptions) error {
	f.ops = append(f.ops, "navigate:"+url)
	return f.navigateErr
}

func (f *fakeSession) WaitForRole(role, name string, timeout float64) (browser.LocateOutcome, error) {
	f.ops = append(f.ops, fmt.Sprintf("wait:%s:%s", role, name))
	switch name {
	case LandingButton:
		return f.buttonOutcome, f.buttonErr
	case HomeHeading:
		return f.headingOutcome, f.headingErr
	}
	return browser.OutcomeNotFound, fmt.Errorf("unexpected wait target %q", name)
}

func (f *fakeSession) ClickRole(role, name string) error {
	f.ops = append(f.ops, fmt.Sprintf("click:%s:%s", role, name))
	return f.clickErr
}

func (f *fakeSession) TextVisible(text string) (bool, error) {
	f.ops = append(f.ops, "textvisible:"+text)
	return f.removedVisible, f.removedErr
}

func (f *fakeSession) Screenshot(path string) error {
	f.ops = append(f.ops, "screenshot:"+path)
	if err := f.screenshotErrs[path]; err != nil {
		return err
	}
	f.screenshots = append(f.screenshots, path)
	return nil
}

func (f *fakeSession) VisibleText(maxLength int) (string, error) {
	return "Welcome to Jubee's World!", nil
}

func (f *fakeSession) Close() error {
	f.closeCount++
	return nil
}

// indexOf returns the position of op in ops, or -1.
func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}

// countPrefix counts ops starting with prefix.
func countPrefix(ops []string, prefix string) int {
	n := 0
	for _, o := range ops {
		if len(o) >= len(prefix) && o[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func newTestRunner(t *testing.T, sess Session, launchErr error) (*Runner, *config.Config, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	out := &bytes.Buffer{}
	console := logging.NewConsole(logging.LevelVerbose)
	console.SetWriter(out)
	logger := logging.NewWriterLogger("test", io.Discard)

	runner := NewRunner(cfg, console, logger, WithLaunchFunc(
		func(opts browser.SessionOptions) (Session, error) {
			if launchErr != nil {
				return nil, launchErr
			}
			return sess, nil
		}))

	return runner, cfg, out
}

func TestRunClicksLandingButtonExactlyOnce(t *testing.T) {
	sess := &fakeSession{
		buttonOutcome:  browser.OutcomeFound,
		headingOutcome: browser.OutcomeFound,
	}
	runner, cfg, _ := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.NoError(t, err)

	clickOp := "click:button:" + LandingButton
	assert.Equal(t, 1, countPrefix(sess.ops, "click:"), "landing button must be clicked exactly once")

	// The click must happen before the heading assertion
	clickIdx := indexOf(sess.ops, clickOp)
	headingIdx := indexOf(sess.ops, "wait:heading:"+HomeHeading)
	require.GreaterOrEqual(t, clickIdx, 0)
	require.GreaterOrEqual(t, headingIdx, 0)
	assert.Less(t, clickIdx, headingIdx)

	assert.Equal(t, []string{cfg.HomeScreenshot}, sess.screenshots)
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunSkipsClickWhenLandingButtonAbsent(t *testing.T) {
	sess := &fakeSession{
		buttonOutcome:  browser.OutcomeNotFound,
		headingOutcome: browser.OutcomeFound,
	}
	runner, cfg, out := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, countPrefix(sess.ops, "click:"), "no click when the landing button never appears")
	assert.Contains(t, out.String(), "Landing page not detected")
	assert.Equal(t, []string{cfg.HomeScreenshot}, sess.screenshots)
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunFailsWhenHeadingNotVisible(t *testing.T) {
	sess := &fakeSession{
		buttonOutcome:  browser.OutcomeNotFound,
		headingOutcome: browser.OutcomeNotFound,
	}
	runner, cfg, _ := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeadingNotVisible)

	assert.Equal(t, []string{cfg.ErrorScreenshot}, sess.screenshots, "failure must capture the diagnostic screenshot")
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunFailsWhenRemovedTextVisible(t *testing.T) {
	sess := &fakeSession{
		buttonOutcome:  browser.OutcomeFound,
		headingOutcome: browser.OutcomeFound,
		removedVisible: true,
	}
	runner, cfg, _ := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemovedTextVisible)

	assert.Equal(t, []string{cfg.ErrorScreenshot}, sess.screenshots)
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunPropagatesUnexpectedLocateError(t *testing.T) {
	// Non-timeout failures on the optional button wait are not the expected
	// alternate flow and must surface
	crash := errors.New("browser crashed")
	sess := &fakeSession{buttonErr: crash}
	runner, _, _ := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, crash)
	assert.Zero(t, countPrefix(sess.ops, "click:"))
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunPropagatesNavigationError(t *testing.T) {
	navErr := errors.New("net::ERR_CONNECTION_REFUSED")
	sess := &fakeSession{navigateErr: navErr}
	runner, cfg, _ := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, navErr)
	assert.Equal(t, []string{cfg.ErrorScreenshot}, sess.screenshots)
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunLaunchFailure(t *testing.T) {
	launchErr := errors.New("failed to start playwright")
	runner, _, _ := newTestRunner(t, nil, launchErr)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, launchErr)
}

func TestRunDiagnosticScreenshotFailureDoesNotMaskError(t *testing.T) {
	cfg := config.Default()
	sess := &fakeSession{
		buttonOutcome:  browser.OutcomeNotFound,
		headingOutcome: browser.OutcomeNotFound,
		screenshotErrs: map[string]error{
			cfg.ErrorScreenshot: errors.New("disk full"),
		},
	}
	runner, _, out := newTestRunner(t, sess, nil)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHeadingNotVisible, "screenshot failure must not replace the verification error")
	assert.Contains(t, out.String(), "could not capture error screenshot")
	assert.Equal(t, 1, sess.closeCount)
}

func TestRunCanceledContext(t *testing.T) {
	sess := &fakeSession{}
	runner, _, _ := newTestRunner(t, sess, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sess.closeCount, "browser released once even when canceled")
}
