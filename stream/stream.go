// Package stream drives the streaming parse-and-fan-out loop.
//
// A Streamer reads byte chunks from a chunk.Source, parses them
// incrementally and dispatches the document root's start tag plus each
// fully closed direct child of the root through a fanout.Dispatcher,
// trimming the partial tree after every dispatch so memory stays
// bounded for arbitrarily long documents.
//
// A run ends on PoisonPill, on source closure, or on a parse error.
// None of these is raised to the caller: the run simply ends, with the
// terminal state observable via State and Reason.
package stream

import (
	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"

	"github.com/xmlpipe/xmlpipe/chunk"
	"github.com/xmlpipe/xmlpipe/fanout"
	"github.com/xmlpipe/xmlpipe/parser"
	"github.com/xmlpipe/xmlpipe/xmlutil"
)

// Streamer is a single-use pipeline instance bound to one input stream.
// It is driven by exactly one goroutine; the partial parse tree is
// owned by that goroutine alone.
type Streamer struct {
	in   chunk.Source
	disp *fanout.Dispatcher
	log  logrus.FieldLogger

	state  State
	reason Reason
	root   string
}

// New returns a Streamer reading from in and dispatching through disp.
func New(in chunk.Source, disp *fanout.Dispatcher, opts ...Option) *Streamer {
	s := &Streamer{in: in, disp: disp, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the streamer's current state. It is not synchronized;
// read it only after Run has returned, or from the running goroutine.
func (s *Streamer) State() State { return s.state }

// Reason returns why the run terminated, or ReasonNone before then.
func (s *Streamer) Reason() Reason { return s.reason }

// RootTag returns the captured root tag name, or "" before capture.
func (s *Streamer) RootTag() string { return s.root }

// Run parses chunks from the source until cancellation, source closure
// or a parse error. It completes without a return value in every case:
// cancellation is clean and expected, and a parse error is reported
// only as a warning log line. Elements dispatched before termination
// remain valid with the consumers.
func (s *Streamer) Run() {
	defer func() { s.state = StateTerminated }()

	prelude, ok := s.awaitRoot()
	if !ok {
		return
	}
	s.state = StateStreaming

	// The root detector consumed these bytes through its own parser
	// instance; replay them so the main parser misses nothing.
	p := parser.New(parser.WithEndEvents())
	if err := p.Feed(prelude); err != nil {
		s.parseError(p, err)
		return
	}
	for {
		s.dispatchClosed(p)
		c, open := <-s.in
		if !open {
			s.reason = ReasonStreamExhausted
			return
		}
		if c.IsPoison() {
			s.log.Debug("received poison pill")
			s.reason = ReasonCancelled
			return
		}
		if err := p.Feed(c.Data()); err != nil {
			s.parseError(p, err)
			return
		}
	}
}

// awaitRoot consumes chunks until the root element's start tag is
// observed, dispatching the bare start tag and capturing its name. It
// returns every byte consumed so the caller can replay them, and false
// if the run terminated before a root was seen (reason already set).
func (s *Streamer) awaitRoot() (prelude []byte, ok bool) {
	p := parser.New(parser.WithStartEvents())
	for {
		c, open := <-s.in
		if !open {
			s.reason = ReasonStreamExhausted
			return nil, false
		}
		if c.IsPoison() {
			// Any bytes received so far never amounted to an element;
			// dropping them is not an error.
			s.log.Debug("received poison pill")
			s.reason = ReasonCancelled
			return nil, false
		}
		prelude = append(prelude, c.Data()...)
		if err := p.Feed(c.Data()); err != nil {
			s.parseError(p, err)
			return nil, false
		}
		for _, el := range p.Drain() {
			// the first start tag belongs to the root element
			s.root = xmlutil.Name(el)
			s.disp.Dispatch(xmlutil.StartTag(el))
			return prelude, true
		}
	}
}

// dispatchClosed drains closed elements and dispatches those that are
// the root itself or a direct child of the root, trimming each one
// afterwards. Elements deeper in the tree stay untouched: they are
// still-needed descendants of a future direct child.
func (s *Streamer) dispatchClosed(p *parser.PullParser) {
	for _, el := range p.Drain() {
		if !s.isRootOrChild(el) {
			continue
		}
		s.disp.Dispatch(el)
		xmlutil.Trim(el)
	}
}

func (s *Streamer) isRootOrChild(el *xmlquery.Node) bool {
	parent := el.Parent
	if parent == nil || parent.Type == xmlquery.DocumentNode {
		return true
	}
	return xmlutil.Name(parent) == s.root
}

// parseError ends the run after a malformed input. Elements validly
// closed before the offending bytes are still dispatched; the only
// outward signal is a single warning log line.
func (s *Streamer) parseError(p *parser.PullParser, err error) {
	if s.state == StateStreaming {
		s.dispatchClosed(p)
	}
	s.log.Warnf("error parsing stream: %v", err)
	s.reason = ReasonParseError
}
