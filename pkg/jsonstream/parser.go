package jsonstream

import "fmt"

// parserState is a state in the parser adapter's pushdown automaton.
type parserState int

const (
	stUndefined parserState = iota
	stNone
	stInObject
	stInObjectMember
	stInObjectMemberValue
	stInObjectSep
	stInArray
	stInArraySep
)

func (s parserState) String() string {
	switch s {
	case stUndefined:
		return "Undefined"
	case stNone:
		return "None"
	case stInObject:
		return "InObject"
	case stInObjectMember:
		return "InObjectMember"
	case stInObjectMemberValue:
		return "InObjectMemberValue"
	case stInObjectSep:
		return "InObjectSep"
	case stInArray:
		return "InArray"
	case stInArraySep:
		return "InArraySep"
	}
	return "?"
}

// ParserAdapter is a pushdown automaton over lexer tokens. It implements
// Consumer so it can sit directly downstream of a Lexer, and wraps a
// user-supplied Consumer to which it delivers the higher-level parser
// token stream (Key/StringValue substituted for the lexer's plain String,
// NameSeparator/ValueSeparator consumed silently).
//
// Grounded on _examples/original_source/src/json_parser.rs's
// JSONLexerToParser: same state set, same state-stack discipline (pushed
// on descent into a nested container, popped on its close), re-authored
// in Go with an explicit state stack rather than recursion, per the
// package's "no recursion over untrusted nesting" design note.
type ParserAdapter struct {
	consumer Consumer
	state    parserState
	stack    []parserState
}

// NewParserAdapter returns a ParserAdapter delivering parser-level events
// to consumer.
func NewParserAdapter(consumer Consumer) *ParserAdapter {
	return &ParserAdapter{consumer: consumer, state: stUndefined}
}

// Parse runs lexer over this adapter, driving consumer with the resulting
// parser token stream. It returns nil when the lexer pass completes
// normally, or the abort error returned by the wrapped consumer. A lexical
// error always ends the pass: after delivering it to the wrapped consumer,
// the adapter aborts the lexer with an error of its own (unless the
// consumer already aborted), and Parse returns that error.
func (p *ParserAdapter) Parse(lexer *Lexer) error {
	return lexer.Lex(p)
}

func (p *ParserAdapter) push(resume parserState) { p.stack = append(p.stack, resume) }

func (p *ParserAdapter) pop() parserState {
	n := len(p.stack)
	s := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return s
}

func (p *ParserAdapter) parseErrorf(t Token, format string, args ...interface{}) error {
	return p.consumer.Consume(Event{Err: &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    t.Line,
		Col:     t.Col,
	}})
}

// Consume implements Consumer; it receives lexer-level events.
func (p *ParserAdapter) Consume(e Event) error {
	if e.Err != nil {
		if err := p.consumer.Consume(Event{Err: e.Err}); err != nil {
			return err
		}
		return fmt.Errorf("aborted after lexical error: %s", e.Err.Message)
	}
	t := e.Token

	switch p.state {
	case stUndefined:
		if t.Kind != BeginFile {
			return p.parseErrorf(t, "Unexpected state")
		}
		p.state = stNone
		return p.consumer.Consume(Event{Token: Token{Kind: BeginFile, Line: t.Line, Col: t.Col}})

	case stNone:
		if t.Kind == EndFile {
			if len(p.stack) > 0 {
				return p.parseErrorf(t, "Should be closed: %s", p.stack[len(p.stack)-1])
			}
			return p.consumer.Consume(Event{Token: Token{Kind: EndFile, Line: t.Line, Col: t.Col}})
		}
		return p.consumeValuePosition(t, stNone)

	case stInObject:
		switch t.Kind {
		case EndObject:
			p.state = p.pop()
			return p.consumer.Consume(Event{Token: Token{Kind: EndObject, Line: t.Line, Col: t.Col}})
		case String:
			p.state = stInObjectMember
			return p.consumer.Consume(Event{Token: Token{Kind: Key, Text: t.Text, Line: t.Line, Col: t.Col}})
		default:
			return p.parseErrorf(t, "Unexpected token `%s`", t.Kind)
		}

	case stInObjectMember:
		if t.Kind != NameSeparator {
			return p.parseErrorf(t, "Unexpected token `%s`", t.Kind)
		}
		p.state = stInObjectMemberValue
		return nil

	case stInObjectMemberValue:
		return p.consumeValuePosition(t, stInObjectSep)

	case stInObjectSep:
		switch t.Kind {
		case ValueSeparator:
			p.state = stInObject
			return nil
		case EndObject:
			p.state = p.pop()
			return p.consumer.Consume(Event{Token: Token{Kind: EndObject, Line: t.Line, Col: t.Col}})
		default:
			return p.parseErrorf(t, "Unexpected token `%s`", t.Kind)
		}

	case stInArray:
		if t.Kind == EndArray {
			p.state = p.pop()
			return p.consumer.Consume(Event{Token: Token{Kind: EndArray, Line: t.Line, Col: t.Col}})
		}
		return p.consumeValuePosition(t, stInArraySep)

	case stInArraySep:
		switch t.Kind {
		case ValueSeparator:
			p.state = stInArray
			return nil
		case EndArray:
			p.state = p.pop()
			return p.consumer.Consume(Event{Token: Token{Kind: EndArray, Line: t.Line, Col: t.Col}})
		default:
			return p.parseErrorf(t, "Unexpected token `%s`", t.Kind)
		}
	}
	return nil
}

// consumeValuePosition handles a token appearing where a value is
// expected (top level, in an object member's value, or in an array). On
// a scalar it emits it and moves to resume (the state to occupy once this
// value has closed); on a nested container it pushes resume and descends.
//
// EndFile is not special-cased here: it is only ever valid in state None
// (handled by the caller before reaching this function), so in every
// other value position it falls through to the default "unexpected
// token" arm below, exactly as the original's per-state match arms have
// no EndFile case of their own outside None.
func (p *ParserAdapter) consumeValuePosition(t Token, resume parserState) error {
	switch t.Kind {
	case BeginObject:
		p.push(resume)
		p.state = stInObject
		return p.consumer.Consume(Event{Token: Token{Kind: BeginObject, Line: t.Line, Col: t.Col}})
	case BeginArray:
		p.push(resume)
		p.state = stInArray
		return p.consumer.Consume(Event{Token: Token{Kind: BeginArray, Line: t.Line, Col: t.Col}})
	case Bool, Null, Int, Float:
		p.state = resume
		return p.consumer.Consume(Event{Token: Token{Kind: t.Kind, Text: t.Text, Bool: t.Bool, Line: t.Line, Col: t.Col}})
	case String:
		p.state = resume
		return p.consumer.Consume(Event{Token: Token{Kind: StringValue, Text: t.Text, Line: t.Line, Col: t.Col}})
	default:
		return p.parseErrorf(t, "Unexpected token `%s`", t.Kind)
	}
}
