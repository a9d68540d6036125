package captions

import (
	"regexp"
	"strconv"
	"strings"
)

// Caption text scraped from timedtext payloads arrives with a second layer
// of HTML entity encoding on top of the XML one. Decoding is total: anything
// that only looks like an entity is left untouched.
//
// Named entities are substituted before numeric references so that an entity
// decoding to '&' cannot be re-read as the start of a new entity.
var namedEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&rsquo;", "'",
	"&lsquo;", "'",
	"&rdquo;", `"`,
	"&ldquo;", `"`,
	"&nbsp;", " ",
)

var (
	decimalRef = regexp.MustCompile(`&#([0-9]+);`)
	hexRef     = regexp.MustCompile(`&#[xX]([0-9a-fA-F]+);`)
)

// Decode replaces the fixed table of named entities and then resolves
// decimal and hexadecimal character references.
func Decode(text string) string {
	decoded := namedEntities.Replace(text)

	decoded = decimalRef.ReplaceAllStringFunc(decoded, func(m string) string {
		digits := m[2 : len(m)-1]
		n, err := strconv.ParseInt(digits, 10, 32)
		if err != nil || !validRune(rune(n)) {
			return m
		}
		return string(rune(n))
	})

	decoded = hexRef.ReplaceAllStringFunc(decoded, func(m string) string {
		digits := m[3 : len(m)-1]
		n, err := strconv.ParseInt(digits, 16, 32)
		if err != nil || !validRune(rune(n)) {
			return m
		}
		return string(rune(n))
	})

	return decoded
}

func validRune(r rune) bool {
	return r > 0 && r <= 0x10FFFF && !(r >= 0xD800 && r <= 0xDFFF)
}
