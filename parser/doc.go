/*
Package parser implements an incremental XML pull parser.

Input arrives in arbitrary-sized pieces via Feed; structural events are
collected via Drain as soon as enough bytes have arrived, without
requiring the whole document upfront. The Tokenizer turns the byte
stream into markup tokens, suspending with ErrMoreData whenever the
buffer ends mid-token; the PullParser assembles tokens into a partial
xmlquery document tree and queues element nodes as their start or end
tags are observed.

Malformed input surfaces as a *SyntaxError carrying the absolute input
offset of the offending markup. A parse error is unrecoverable: once
Feed has returned an error, the parser returns that same error from all
further calls.
*/
package parser
