// Package fanout delivers independent copies of parsed elements to the
// stage's two downstream consumers.
//
// Each consumer is modelled as a Sink, a deliver-and-confirm
// abstraction: Put returns once delivery has been issued in a way that
// preserves per-sink FIFO order. BlockingSink offloads a blocking put
// to a dedicated worker goroutine so a slow consumer cannot stall the
// parsing loop; ChannelSink enqueues onto a channel directly.
package fanout

import (
	"github.com/antchfx/xmlquery"

	"github.com/xmlpipe/xmlpipe/xmlutil"
)

// Sink accepts elements for one downstream consumer. Put must preserve
// the order of successive calls; it may suspend the caller but must not
// depend on the caller for further progress.
type Sink interface {
	Put(el *xmlquery.Node)
}

// BlockingSink adapts a blocking put function into a Sink by running it
// on a single worker goroutine. Put hands the element to the worker and
// returns; the worker invokes the wrapped function for each element in
// arrival order.
type BlockingSink struct {
	queue chan *xmlquery.Node
	done  chan struct{}
}

// Blocking returns a BlockingSink wrapping put. Close must be called to
// stop the worker once the stream has ended.
func Blocking(put func(el *xmlquery.Node), opts ...Option) *BlockingSink {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &BlockingSink{
		queue: make(chan *xmlquery.Node, cfg.queueDepth),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for el := range s.queue {
			put(el)
		}
	}()
	return s
}

// Put hands el to the worker goroutine, suspending until the worker can
// accept it.
func (s *BlockingSink) Put(el *xmlquery.Node) { s.queue <- el }

// Close stops the worker after it has drained all queued elements and
// waits for it to finish. Put must not be called after Close.
func (s *BlockingSink) Close() {
	close(s.queue)
	<-s.done
}

// ChannelSink delivers elements by sending them on a channel.
type ChannelSink chan<- *xmlquery.Node

// Channel returns a ChannelSink sending on ch.
func Channel(ch chan<- *xmlquery.Node) ChannelSink { return ChannelSink(ch) }

// Put sends el on the sink's channel, suspending while the channel is
// full.
func (s ChannelSink) Put(el *xmlquery.Node) { s <- el }

// Dispatcher fans each emitted element out to two sinks.
type Dispatcher struct {
	A Sink
	B Sink
}

// Dispatch delivers an independent deep copy of el to each sink. The
// copies share no mutable state with each other or with el, so the
// caller is free to trim el immediately afterwards. Dispatch returns
// once both deliveries have been issued; per-sink order across calls is
// the call order.
func (d *Dispatcher) Dispatch(el *xmlquery.Node) {
	d.A.Put(xmlutil.Copy(el))
	d.B.Put(xmlutil.Copy(el))
}

// Close closes any sink implementing Close, waiting for queued
// deliveries to finish.
func (d *Dispatcher) Close() {
	for _, s := range []Sink{d.A, d.B} {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
