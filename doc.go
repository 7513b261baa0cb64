/*
Package xmlpipe is a streaming XML parse-and-fan-out pipeline stage.

The stage consumes an XML document arriving as an unbounded sequence of
byte chunks, parses it incrementally, and delivers the document root's
start tag plus every fully closed direct child of the root to two
independent downstream sinks, in document order. Already-processed parts
of the partial document tree are trimmed as the stream advances, so
memory use is bounded by tree depth and in-flight breadth rather than by
document length.

The chunk package defines the input byte chunk and the PoisonPill
cancellation sentinel. The parser package wraps an incremental XML
tokenizer behind a feed/drain pull parser producing xmlquery element
trees. The fanout package delivers independent deep copies of emitted
elements to a blocking (off-thread) sink and a channel sink. The stream
package ties these together into the single-goroutine streaming loop.

See cmd/xmlpipe for a small command demonstrating the pipeline against a
file or standard input.
*/
package xmlpipe
