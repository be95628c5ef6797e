package feed

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func TestXMLWriter(t *testing.T) {
	w := newXMLWriter()
	w.open("root", 0, attr{"a", "1"})
	w.writeElement("empty", "", 2)
	w.writeElement("text", "x & y", 2)
	w.writeEmpty("leaf", 2, attr{"href", `"q"`})
	w.writeContent("raw", "<b>", 2, cdataText{})
	w.close("root", 0)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<root a="1">
  <text>x &amp; y</text>
  <leaf href="&#34;q&#34;" />
  <raw><![CDATA[<b>]]></raw>
</root>
`
	if got := w.String(); got != want {
		t.Errorf("Unexpected document.\nExpected:\n%s\nGot:\n%s", want, got)
	}
}

func TestContentWriters(t *testing.T) {
	tests := []struct {
		name     string
		useCDATA bool
		text     string
		want     string
	}{
		{"escaped", false, "<p>a & b</p>", "&lt;p&gt;a &amp; b&lt;/p&gt;"},
		{"cdata", true, "<p>a & b</p>", "<![CDATA[<p>a & b</p>]]>"},
		{"cdata terminator is split", true, "x]]>y", "<![CDATA[x]]]]><![CDATA[>y]]>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			contentWriterFor(tt.useCDATA).writeContent(&buf, tt.text)
			if buf.String() != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, buf.String())
			}
		})
	}
}

// Both strategies must decode to the same character data.
func TestContentWritersAreEquivalent(t *testing.T) {
	texts := []string{
		"plain",
		"<p>Tom & Jerry</p>",
		"nested ]]> terminator",
		`quotes "double" and 'single'`,
		"a\x01b",
		"a\xffb",
	}

	for _, text := range texts {
		for _, useCDATA := range []bool{false, true} {
			var buf bytes.Buffer
			buf.WriteString("<c>")
			contentWriterFor(useCDATA).writeContent(&buf, text)
			buf.WriteString("</c>")

			var decoded struct {
				Text string `xml:",chardata"`
			}
			if err := xml.NewDecoder(strings.NewReader(buf.String())).Decode(&decoded); err != nil {
				t.Fatalf("Expected well-formed XML for %q (cdata=%v), got: %v", text, useCDATA, err)
			}
			if want := sanitizeXML(text); decoded.Text != want {
				t.Errorf("Expected %q to decode as %q (cdata=%v), got %q", text, want, useCDATA, decoded.Text)
			}
		}
	}
}

func TestSanitizeXML(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"clean", "Tom & Jerry\t\n", "Tom & Jerry\t\n"},
		{"multibyte", "Grüße 日本", "Grüße 日本"},
		{"control character", "a\x01b", "a\uFFFDb"},
		{"invalid utf-8", "a\xffb", "a\uFFFDb"},
		{"noncharacter", "a\uFFFEb", "a\uFFFDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeXML(tt.text); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestXMLWriterSanitizesAttributes(t *testing.T) {
	w := newXMLWriter()
	w.open("root", 0)
	w.writeEmpty("category", 2, attr{"term", "a\xffb"})
	w.writeEmpty("category", 2, attr{"term", "a\x01b"})
	w.close("root", 0)

	var terms []string
	dec := xml.NewDecoder(strings.NewReader(w.String()))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Expected well-formed XML, got: %v\n%s", err, w.String())
		}
		if el, ok := tok.(xml.StartElement); ok && el.Name.Local == "category" {
			terms = append(terms, el.Attr[0].Value)
		}
	}

	if len(terms) != 2 || terms[0] != "a\uFFFDb" || terms[1] != "a\uFFFDb" {
		t.Errorf("Expected replaced characters in terms, got %q", terms)
	}
}
