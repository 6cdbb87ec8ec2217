package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var entityPattern = regexp.MustCompile(`^&(?:[A-Za-z][A-Za-z0-9]*|#[0-9]+|#[xX][0-9A-Fa-f]+);`)

// Escaper converts text into HTML safe output for a given charset. Quotes are
// always escaped, existing entity references are left alone, and runes the
// target charset cannot represent become numeric character references. Runes
// the charset can encode are written as is; no named entities are produced.
type Escaper struct {
	charset string
	enc     encoding.Encoding
}

// NewEscaper resolves charset through the WHATWG encoding index. Unknown or
// empty names fall back to UTF-8.
func NewEscaper(charset string) Escaper {
	enc, err := htmlindex.Get(strings.TrimSpace(charset))
	if err != nil {
		return Escaper{charset: DefaultEncoding}
	}
	name, err := htmlindex.Name(enc)
	if err != nil || name == "utf-8" {
		return Escaper{charset: DefaultEncoding}
	}
	return Escaper{charset: strings.TrimSpace(charset), enc: enc}
}

// Charset returns the charset name the escaper was resolved to.
func (e Escaper) Charset() string {
	if e.charset == "" {
		return DefaultEncoding
	}
	return e.charset
}

// Escape returns value with HTML special characters replaced by entities.
func (e Escaper) Escape(value string) string {
	if value == "" {
		return ""
	}

	var encoder *encoding.Encoder
	if e.enc != nil {
		encoder = e.enc.NewEncoder()
	}

	var builder strings.Builder
	builder.Grow(len(value) + 16)
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		switch {
		case r == '&':
			if match := entityPattern.FindString(value[i:]); match != "" {
				builder.WriteString(match)
				i += len(match)
				continue
			}
			builder.WriteString("&amp;")
		case r == '<':
			builder.WriteString("&lt;")
		case r == '>':
			builder.WriteString("&gt;")
		case r == '"':
			builder.WriteString("&quot;")
		case r == '\'':
			builder.WriteString("&#039;")
		case r >= utf8.RuneSelf && encoder != nil && !encodable(encoder, value[i:i+size]):
			builder.WriteString("&#")
			builder.WriteString(strconv.Itoa(int(r)))
			builder.WriteByte(';')
		default:
			builder.WriteString(value[i : i+size])
		}
		i += size
	}
	return builder.String()
}

func encodable(encoder *encoding.Encoder, char string) bool {
	_, err := encoder.String(char)
	return err == nil
}
