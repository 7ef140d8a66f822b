package xmlsink

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jsonevents/json2xml/pkg/indent"
	"github.com/jsonevents/json2xml/pkg/jsonstream"
)

// Options selects one of the four XML rendering modes. Formatted adds a
// newline and 4-space-per-level indentation to every element; Typed adds
// a type="..." attribute to every scalar element, and renders an empty
// string value as a self-closing tag with that attribute rather than
// needing a string-typed token in the running text.
type Options struct {
	Formatted bool
	Typed     bool
}

// Sink is a jsonstream.Consumer that renders the parser token stream it
// receives as XML, wrapped in a single <root> element. It never buffers
// more than the current container-nesting path: one entry per open
// object/array on statesStack, and one pending element name per entry on
// keysStack.
//
// Grounded on _examples/original_source/src/json2xml.rs's
// JSON2XMLConsumer: same two stacks, same dispatch, generalized from four
// parallel XMLWrite trait implementations into one set of formatting
// helper methods that branch on Options, per the package's "one
// strategy-dispatching sink" design note. The outer writer-wrapping shape
// (a small struct around a buffered io.Writer, formatting helpers named
// after what they emit) follows tree.go's Write methods.
type Sink struct {
	w    *bufio.Writer
	iw   *indent.Writer // wraps w; prefix is set to the current depth before every element write
	opts Options

	statesStack []jsonstream.Kind // BeginObject or BeginArray, one per open container
	keysStack   []string          // one pending element name per open container
}

// NewSink returns a Sink that writes XML to w under the given Options.
func NewSink(w io.Writer, opts Options) *Sink {
	bw := bufio.NewWriter(w)
	return &Sink{w: bw, iw: indent.NewWriter(bw, ""), opts: opts}
}

// Flush flushes any buffered output to the underlying writer. Callers
// should Flush after the pipeline feeding this Sink completes, whether or
// not it ended in an error.
func (s *Sink) Flush() error { return s.w.Flush() }

// Consume implements jsonstream.Consumer.
func (s *Sink) Consume(e jsonstream.Event) error {
	if e.Err != nil {
		return fmt.Errorf("%s", e.Err.Error())
	}
	t := e.Token

	var err error
	switch t.Kind {
	case jsonstream.BeginFile:
		err = s.writeOpen()

	case jsonstream.EndFile:
		err = s.writeClose()

	case jsonstream.BeginObject, jsonstream.BeginArray:
		if len(s.statesStack) > 0 {
			switch s.statesStack[len(s.statesStack)-1] {
			case jsonstream.BeginArray:
				s.keysStack = append(s.keysStack, "li")
				err = s.writeBegin(len(s.statesStack)*4, "li")
			default:
				err = s.writeBegin(len(s.statesStack)*4, s.keysStack[len(s.keysStack)-1])
			}
		}
		s.statesStack = append(s.statesStack, t.Kind)

	case jsonstream.EndObject, jsonstream.EndArray:
		s.statesStack = s.statesStack[:len(s.statesStack)-1]
		if len(s.statesStack) > 0 {
			n := len(s.keysStack) - 1
			key := s.keysStack[n]
			s.keysStack = s.keysStack[:n]
			err = s.writeEnd(len(s.statesStack)*4, key)
		}

	case jsonstream.Key:
		s.keysStack = append(s.keysStack, t.Text)

	case jsonstream.Bool:
		var key string
		key, err = s.curKey()
		if err == nil {
			value := "false"
			if t.Bool {
				value = "true"
			}
			err = s.writeValue(len(s.statesStack)*4, key, "boolean", value)
		}

	case jsonstream.Null:
		var key string
		key, err = s.curKey()
		if err == nil {
			err = s.writeValue(len(s.statesStack)*4, key, "null", "null")
		}

	case jsonstream.StringValue:
		var key string
		key, err = s.curKey()
		if err == nil {
			err = s.writeStringValue(len(s.statesStack)*4, key, t.Text)
		}

	case jsonstream.Int:
		var key string
		key, err = s.curKey()
		if err == nil {
			err = s.writeValue(len(s.statesStack)*4, key, "int", t.Text)
		}

	case jsonstream.Float:
		var key string
		key, err = s.curKey()
		if err == nil {
			err = s.writeValue(len(s.statesStack)*4, key, "float", t.Text)
		}
	}
	if err != nil {
		return fmt.Errorf("writing xml: %w", err)
	}
	return nil
}

// curKey returns the element name a scalar at the current position
// should be rendered under: "li" inside an array, the pending member
// name inside an object. A scalar with no enclosing container (a bare
// top-level JSON scalar) has no element name to render under, which is
// an error for this sink.
func (s *Sink) curKey() (string, error) {
	if len(s.statesStack) == 0 {
		return "", fmt.Errorf("scalar value has no enclosing element")
	}
	if s.statesStack[len(s.statesStack)-1] == jsonstream.BeginArray {
		return "li", nil
	}
	n := len(s.keysStack) - 1
	key := s.keysStack[n]
	s.keysStack = s.keysStack[:n]
	return key, nil
}

// setDepth points the indent writer at the prefix for the given nesting
// depth, a no-op in unformatted mode.
func (s *Sink) setDepth(size int) {
	if s.opts.Formatted {
		s.iw.SetPrefix(strings.Repeat(" ", size))
	}
}

func (s *Sink) newline() {
	if s.opts.Formatted {
		s.iw.Write([]byte{'\n'})
	}
}

func (s *Sink) writeOpen() error {
	s.setDepth(0)
	s.iw.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n"))
	s.iw.Write([]byte("<root>"))
	s.newline()
	return nil
}

func (s *Sink) writeClose() error {
	s.setDepth(0)
	s.iw.Write([]byte("</root>"))
	s.newline()
	return nil
}

func (s *Sink) writeBegin(size int, key string) error {
	s.setDepth(size)
	fmt.Fprintf(s.iw, "<%s>", key)
	s.newline()
	return nil
}

func (s *Sink) writeEnd(size int, key string) error {
	s.setDepth(size)
	fmt.Fprintf(s.iw, "</%s>", key)
	s.newline()
	return nil
}

func (s *Sink) writeValue(size int, key, valueType, value string) error {
	s.setDepth(size)
	if s.opts.Typed {
		fmt.Fprintf(s.iw, "<%s type=%q>%s</%s>", key, valueType, value, key)
	} else {
		fmt.Fprintf(s.iw, "<%s>%s</%s>", key, value, key)
	}
	s.newline()
	return nil
}

func (s *Sink) writeStringValue(size int, key, value string) error {
	s.setDepth(size)
	if value == "" {
		if s.opts.Typed {
			fmt.Fprintf(s.iw, `<%s type="string"/>`, key)
		} else {
			fmt.Fprintf(s.iw, "<%s/>", key)
		}
	} else {
		e := escapeValue(value)
		if s.opts.Typed {
			fmt.Fprintf(s.iw, `<%s type="string">%s</%s>`, key, e, key)
		} else {
			fmt.Fprintf(s.iw, "<%s>%s</%s>", key, e, key)
		}
	}
	s.newline()
	return nil
}

// escapeValue wraps s in a CDATA section if it contains any character
// that would need XML escaping. A literal "]]>" inside s, which would
// otherwise terminate the CDATA section early, is split into
// "]]]]><![CDATA[>" straddling two adjacent CDATA sections.
func escapeValue(s string) string {
	if !strings.ContainsAny(s, `<>&"'`) {
		return s
	}
	if strings.Contains(s, "]]>") {
		return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
	}
	return "<![CDATA[" + s + "]]>"
}
