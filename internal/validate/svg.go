package validate

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"

	"github.com/ryanlewis/textgrid/internal/common"
)

// MaxSVGBytes is the largest document SVG will inspect.
const MaxSVGBytes = 1 << 20

// forbiddenElements are matched against the lowercased local name.
var forbiddenElements = map[string]struct{}{
	"script":        {},
	"foreignobject": {},
	"iframe":        {},
	"object":        {},
	"embed":         {},
}

// svgScanner tracks document structure while lexing.
type svgScanner struct {
	c collector

	stack     []string // open element names
	roots     int
	rootDone  bool
	ids       map[string]struct{}
	inStyle   int
	inPI      bool
	malformed bool

	// current start tag
	tag      string
	local    string
	isRoot   bool
	rootAttr map[string]string
}

// SVG checks that s is a single well-formed <svg> document free of scripts,
// event handlers, external references and javascript: URLs.
func SVG(s string) Result {
	sc := &svgScanner{ids: make(map[string]struct{})}
	if len(s) > MaxSVGBytes {
		sc.c.add(CodeSVGTooLarge, "svg", "document is %d bytes, limit is %d", len(s), MaxSVGBytes)
		return sc.c.result()
	}
	if strings.TrimSpace(s) == "" {
		sc.c.add(CodeSVGMalformed, "svg", "document is empty")
		return sc.c.result()
	}

	sc.scan(xml.NewLexer(parse.NewInputString(s)))

	if !sc.malformed {
		switch {
		case sc.roots == 0:
			sc.c.add(CodeSVGRootInvalid, "svg", "document has no <svg> root element")
		case len(sc.stack) > 0:
			sc.fail("element <%s> is not closed", sc.stack[len(sc.stack)-1])
		}
	}
	return sc.c.result()
}

func (sc *svgScanner) fail(format string, args ...interface{}) {
	if sc.malformed {
		return
	}
	sc.malformed = true
	sc.c.add(CodeSVGMalformed, "svg", format, args...)
}

func (sc *svgScanner) scan(l *xml.Lexer) {
	inTag := false
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				sc.fail("%v", err)
			} else if inTag {
				sc.fail("unexpected end of document inside <%s>", sc.tag)
			}
			return

		case xml.DOCTYPEToken:
			sc.c.add(CodeSVGDoctype, "svg", "DOCTYPE declarations are not allowed")

		case xml.CommentToken:
			if !bytes.HasSuffix(data, []byte("-->")) {
				sc.fail("unterminated comment")
				return
			}

		case xml.CDATAToken:
			if !bytes.HasSuffix(data, []byte("]]>")) {
				sc.fail("unterminated CDATA section")
				return
			}
			sc.text(l.Text())

		case xml.TextToken:
			sc.text(data)

		case xml.StartTagPIToken:
			inTag = true
			sc.inPI = true
			sc.tag = string(l.Text())
			if sc.tag != "xml" || sc.roots > 0 {
				sc.c.add(CodeSVGForbiddenElement, "svg", "processing instruction <?%s?> is not allowed", sc.tag)
			}

		case xml.StartTagClosePIToken:
			inTag = false
			sc.inPI = false

		case xml.StartTagToken:
			inTag = true
			if !sc.startTag(string(l.Text())) {
				return
			}

		case xml.AttributeToken:
			if sc.inPI {
				continue
			}
			if !sc.attribute(string(l.Text()), l.AttrVal()) {
				return
			}

		case xml.StartTagCloseToken:
			inTag = false
			sc.closeStartTag(false)

		case xml.StartTagCloseVoidToken:
			inTag = false
			sc.closeStartTag(true)

		case xml.EndTagToken:
			if !sc.endTag(string(l.Text())) {
				return
			}
		}
	}
}

func (sc *svgScanner) startTag(name string) bool {
	if !validName(name) {
		sc.fail("invalid element name %q", name)
		return false
	}
	sc.tag = name
	sc.local = strings.ToLower(localName(name))
	sc.isRoot = len(sc.stack) == 0

	if sc.isRoot {
		sc.roots++
		switch {
		case sc.rootDone:
			sc.c.add(CodeSVGRootInvalid, "svg", "document has more than one root element")
		case name != "svg":
			sc.c.add(CodeSVGRootInvalid, "svg", "root element is <%s>, want <svg>", name)
		}
		sc.rootAttr = make(map[string]string)
	}

	if _, bad := forbiddenElements[sc.local]; bad {
		sc.c.add(CodeSVGForbiddenElement, "svg", "element <%s> is not allowed", name)
	}
	return true
}

func (sc *svgScanner) attribute(name string, raw []byte) bool {
	val, ok := attrValue(raw)
	if !ok {
		sc.fail("unterminated value for attribute %q on <%s>", name, sc.tag)
		return false
	}
	local := strings.ToLower(localName(name))

	if sc.isRoot {
		sc.rootAttr[name] = val
	}
	if strings.HasPrefix(local, "on") {
		sc.c.add(CodeSVGEventHandler, "svg", "event handler attribute %q on <%s> is not allowed", name, sc.tag)
	}
	if local == "href" {
		sc.c.add(CodeSVGHref, "svg", "attribute %q on <%s> is not allowed", name, sc.tag)
	}
	if hasJavaScriptURL(val) {
		sc.c.add(CodeSVGJavaScriptURL, "svg", "attribute %q on <%s> contains a javascript: URL", name, sc.tag)
	}
	if name == "id" {
		if _, dup := sc.ids[val]; dup {
			sc.c.add(CodeSVGDuplicateID, "svg", "id %q is not unique", val)
		}
		sc.ids[val] = struct{}{}
	}
	return true
}

func (sc *svgScanner) closeStartTag(void bool) {
	if sc.isRoot && sc.tag == "svg" && sc.roots == 1 {
		sc.checkRootAttrs()
	}
	if void {
		if sc.isRoot {
			sc.rootDone = true
		}
	} else {
		sc.stack = append(sc.stack, sc.tag)
		if sc.local == "style" {
			sc.inStyle++
		}
	}
	sc.isRoot = false
}

func (sc *svgScanner) checkRootAttrs() {
	for _, attr := range []string{"width", "height", "xmlns"} {
		if strings.TrimSpace(sc.rootAttr[attr]) == "" {
			sc.c.add(CodeSVGMissingAttribute, "svg", "root <svg> is missing the %s attribute", attr)
		}
	}
	if ns, ok := sc.rootAttr["xmlns"]; ok && strings.TrimSpace(ns) != "" && ns != common.SVGNamespace {
		sc.c.add(CodeSVGNamespaceInvalid, "svg", "xmlns is %q, want %q", ns, common.SVGNamespace)
	}
}

func (sc *svgScanner) endTag(name string) bool {
	if len(sc.stack) == 0 {
		sc.fail("unexpected closing tag </%s>", name)
		return false
	}
	top := sc.stack[len(sc.stack)-1]
	if top != name {
		sc.fail("closing tag </%s> does not match <%s>", name, top)
		return false
	}
	sc.stack = sc.stack[:len(sc.stack)-1]
	if strings.ToLower(localName(name)) == "style" && sc.inStyle > 0 {
		sc.inStyle--
	}
	if len(sc.stack) == 0 {
		sc.rootDone = true
	}
	return true
}

// text checks character data. Only whitespace may appear outside the root;
// stylesheets are scanned for javascript: URLs.
func (sc *svgScanner) text(data []byte) {
	if len(sc.stack) == 0 {
		if len(parse.TrimWhitespace(data)) > 0 {
			sc.fail("text outside the root element")
		}
		return
	}
	if sc.inStyle > 0 && hasJavaScriptURL(string(data)) {
		sc.c.add(CodeSVGJavaScriptURL, "svg", "stylesheet contains a javascript: URL")
	}
}

// attrValue strips the quotes the lexer leaves on a value. ok is false when
// a quoted value is not closed.
func attrValue(raw []byte) (string, bool) {
	if len(raw) == 0 {
		return "", true
	}
	if q := raw[0]; q == '"' || q == '\'' {
		if len(raw) < 2 || raw[len(raw)-1] != q {
			return "", false
		}
		return string(raw[1 : len(raw)-1]), true
	}
	return string(raw), true
}

// hasJavaScriptURL decodes entities, drops whitespace and control
// characters, and looks for a javascript: scheme anywhere in v.
func hasJavaScriptURL(v string) bool {
	decoded := html.UnescapeString(v)
	var b strings.Builder
	b.Grow(len(decoded))
	for _, r := range decoded {
		if r <= 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return bytes.Contains(parse.ToLower([]byte(b.String())), []byte("javascript:"))
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func validName(name string) bool {
	if name == "" || localName(name) == "" {
		return false
	}
	c := name[0]
	return c == '_' || c == ':' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}
