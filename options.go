package docfill

import (
	"os"
	"os/user"
	"runtime"
	"time"
)

// Options holds configuration for the Generator.
type Options struct {
	identity      func() string
	now           func() time.Time
	listener      Listener
	expressions   bool
	notationBegin string
	notationEnd   string
	evaluator     ExpressionEvaluator
}

func defaultOptions() *Options {
	return &Options{
		identity:      Username,
		now:           time.Now,
		listener:      NewSlogListener(nil),
		notationBegin: "${",
		notationEnd:   "}",
	}
}

// Option configures the Generator.
type Option func(*Options)

// WithIdentity sets the provider for the author name written into generated
// documents. The default resolves the current operating system user.
func WithIdentity(provider func() string) Option {
	return func(o *Options) { o.identity = provider }
}

// WithClock sets the time source used for timestamped output filenames.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.now = now }
}

// WithListener sets the mutation listener (default: slog-backed).
func WithListener(l Listener) Option {
	return func(o *Options) { o.listener = l }
}

// WithExpressions enables expression expansion in content cells: ${...}
// segments are evaluated before the row is applied.
func WithExpressions(enabled bool) Option {
	return func(o *Options) { o.expressions = enabled }
}

// WithExpressionNotation sets the expression delimiters (default: "${", "}").
func WithExpressionNotation(begin, end string) Option {
	return func(o *Options) {
		o.notationBegin = begin
		o.notationEnd = end
	}
}

// WithEvaluator sets a custom expression evaluator.
func WithEvaluator(ev ExpressionEvaluator) Option {
	return func(o *Options) { o.evaluator = ev }
}

// Username resolves the current operating system user, falling back to the
// USER/USERNAME environment variables, then "unknown".
func Username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	env := "USER"
	if runtime.GOOS == "windows" {
		env = "USERNAME"
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return "unknown"
}
