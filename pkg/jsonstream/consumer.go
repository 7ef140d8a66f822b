package jsonstream

// Event is exactly one of a Token or an Error, delivered to a Consumer.
// It stands in for a Result<Token, Error>: Err is nil on a successful
// token, non-nil (with a zero Token) on a lexical or parse error.
type Event struct {
	Token Token
	Err   *Error
}

// Consumer receives the stream of events produced by a Lexer or a
// ParserAdapter. Consume is called once per token or error; returning a
// non-nil error is a hard abort. No further events are delivered after an
// abort, EndFile is never synthesised, and the returned error is
// propagated verbatim back to the caller of Lex or Parse.
type Consumer interface {
	Consume(Event) error
}

// ConsumerFunc adapts a plain function to the Consumer interface.
type ConsumerFunc func(Event) error

// Consume implements Consumer.
func (f ConsumerFunc) Consume(e Event) error { return f(e) }
