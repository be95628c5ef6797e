package feed

import (
	"bytes"
	"encoding/xml"
	"html"
	"strings"
	"unicode/utf8"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`
	atomNS    = "http://www.w3.org/2005/Atom"
)

// attr is a single XML attribute, written in the order given.
type attr struct {
	name  string
	value string
}

// xmlWriter builds an indented document into a buffer. Element text is
// escaped unless it goes through a cdataWriter.
type xmlWriter struct {
	buf bytes.Buffer
}

func newXMLWriter() *xmlWriter {
	w := &xmlWriter{}
	w.buf.WriteString(xmlHeader)
	w.buf.WriteString("\n")
	return w
}

func (w *xmlWriter) String() string {
	return w.buf.String()
}

func (w *xmlWriter) open(tag string, indent int, attrs ...attr) {
	w.indent(indent)
	w.startTag(tag, attrs)
	w.buf.WriteString(">\n")
}

func (w *xmlWriter) close(tag string, indent int) {
	w.indent(indent)
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
}

// writeElement writes <tag>content</tag> and skips empty content.
func (w *xmlWriter) writeElement(tag, content string, indent int, attrs ...attr) {
	if content == "" {
		return
	}
	w.writeContent(tag, content, indent, escapedText{}, attrs...)
}

// writeContent writes content through cw regardless of emptiness.
func (w *xmlWriter) writeContent(tag, content string, indent int, cw contentWriter, attrs ...attr) {
	w.indent(indent)
	w.startTag(tag, attrs)
	w.buf.WriteString(">")
	cw.writeContent(&w.buf, content)
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
}

// writeEmpty writes a self-closing element.
func (w *xmlWriter) writeEmpty(tag string, indent int, attrs ...attr) {
	w.indent(indent)
	w.startTag(tag, attrs)
	w.buf.WriteString(" />\n")
}

func (w *xmlWriter) startTag(tag string, attrs []attr) {
	w.buf.WriteString("<")
	w.buf.WriteString(tag)
	for _, a := range attrs {
		w.buf.WriteString(" ")
		w.buf.WriteString(a.name)
		w.buf.WriteString(`="`)
		w.buf.WriteString(html.EscapeString(sanitizeXML(a.value)))
		w.buf.WriteString(`"`)
	}
}

func (w *xmlWriter) indent(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(' ')
	}
}

// contentWriter puts text inside an already opened element.
type contentWriter interface {
	writeContent(buf *bytes.Buffer, text string)
}

type escapedText struct{}

func (escapedText) writeContent(buf *bytes.Buffer, text string) {
	xml.EscapeText(buf, []byte(text))
}

// cdataText writes text verbatim inside CDATA sections. A "]]>" in the text
// is split across two sections.
type cdataText struct{}

func (cdataText) writeContent(buf *bytes.Buffer, text string) {
	buf.WriteString("<![CDATA[")
	buf.WriteString(strings.ReplaceAll(sanitizeXML(text), "]]>", "]]]]><![CDATA[>"))
	buf.WriteString("]]>")
}

func contentWriterFor(useCDATA bool) contentWriter {
	if useCDATA {
		return cdataText{}
	}
	return escapedText{}
}

// sanitizeXML replaces invalid UTF-8 and runes outside the XML Char range
// with U+FFFD, the same substitution xml.EscapeText makes.
func sanitizeXML(s string) string {
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isXMLChar(r, size) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isXMLChar(r, size) {
			b.WriteRune(r)
		} else {
			b.WriteRune(utf8.RuneError)
		}
		i += size
	}
	return b.String()
}

func isXMLChar(r rune, size int) bool {
	if r == utf8.RuneError && size == 1 {
		return false
	}
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
