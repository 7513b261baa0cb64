package parser

// Option is a constructor option function for the PullParser type.
type Option func(*PullParser)

// WithStartEvents configures the parser to queue each element when its
// start tag is parsed.
func WithStartEvents() Option { return func(p *PullParser) { p.emitStart = true } }

// WithEndEvents configures the parser to queue each element once its
// end tag closes. This is the default when no event option is given.
func WithEndEvents() Option { return func(p *PullParser) { p.emitEnd = true } }
