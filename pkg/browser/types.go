package browser

const (
	// DefaultViewportWidth is the default browser viewport width
	DefaultViewportWidth = 1280

	// DefaultViewportHeight is the default browser viewport height
	DefaultViewportHeight = 720

	// DefaultTimeout is the default operation timeout in milliseconds
	DefaultTimeout = 30000
)

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64
}

// withDefaults fills unset fields with package defaults.
func (o SessionOptions) withDefaults() SessionOptions {
	if o.Viewport == nil {
		o.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means the session default)
	Timeout float64
}

// LocateOutcome is the result of a bounded wait for an element.
// A wait that runs out of time is a NotFound outcome rather than an
// error, so callers can branch on expected absence without error
// handling as control flow.
type LocateOutcome int

const (
	// OutcomeFound means the element became visible within the timeout
	OutcomeFound LocateOutcome = iota

	// OutcomeNotFound means the element did not become visible in time
	OutcomeNotFound
)

// String returns a human-readable outcome name.
func (o LocateOutcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not found"
	default:
		return "unknown"
	}
}
