package fanout

type config struct {
	queueDepth int
}

// Option is a constructor option function for sinks in this package.
type Option func(*config)

// WithQueueDepth sets the worker queue capacity of a BlockingSink.
// The default of zero makes every Put rendezvous with the worker,
// confirming the handoff before the caller proceeds.
func WithQueueDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueDepth = n
		}
	}
}
