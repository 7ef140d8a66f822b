package main

import (
	"strings"
	"testing"

	"github.com/jsonevents/json2xml/pkg/xmlsink"
)

func TestConvertRaw(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`{"a":1,"b":[true,null,"x"]}`), &out, xmlsink.Options{}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		`<root><a>1</a><b><li>true</li><li>null</li><li>x</li></b></root>`
	if out.String() != want {
		t.Errorf("got  %s\nwant %s", out.String(), want)
	}
}

func TestConvertFormattedTyped(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`{"a":1}`), &out, xmlsink.Options{Formatted: true, Typed: true}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<root>\n" +
		"    <a type=\"int\">1</a>\n" +
		"</root>\n"
	if out.String() != want {
		t.Errorf("got  %q\nwant %q", out.String(), want)
	}
}

func TestConvertTypedEmptyStringValue(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`{"x":""}`), &out, xmlsink.Options{Typed: true}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		`<root><x type="string"/></root>`
	if out.String() != want {
		t.Errorf("got  %s\nwant %s", out.String(), want)
	}
}

// Scenario: a string value that itself contains a literal "]]>" must be
// split across two CDATA sections rather than prematurely closing the
// outer one.
func TestConvertCDATASplitting(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`{"x":"]]>"}`), &out, xmlsink.Options{Typed: true}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		`<root><x type="string"><![CDATA[]]]]><![CDATA[>]]></x></root>`
	if out.String() != want {
		t.Errorf("got  %s\nwant %s", out.String(), want)
	}
}

func TestConvertNestedArrayOfObjects(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`[{"a":1},{"a":2}]`), &out, xmlsink.Options{}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		`<root><li><a>1</a></li><li><a>2</a></li></root>`
	if out.String() != want {
		t.Errorf("got  %s\nwant %s", out.String(), want)
	}
}

func TestConvertBareScalarIsError(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`42`), &out, xmlsink.Options{}); err == nil {
		t.Fatal("expected an error for a bare top-level scalar, got nil")
	}
}

func TestConvertUnclosedObjectIsError(t *testing.T) {
	var out strings.Builder
	err := convert(strings.NewReader(`{"foo":1`), &out, xmlsink.Options{})
	if err == nil {
		t.Fatal("expected an error for an unclosed object, got nil")
	}
	if !strings.Contains(err.Error(), "EndFile") {
		t.Errorf("error %q should mention the unexpected EndFile", err.Error())
	}
}

func TestConvertInvalidJSON(t *testing.T) {
	var out strings.Builder
	if err := convert(strings.NewReader(`{"a": tru}`), &out, xmlsink.Options{}); err == nil {
		t.Fatal("expected an error for malformed JSON, got nil")
	}
}
