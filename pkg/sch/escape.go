package sch

import "strings"

// Net names are stored escaped: characters that have a meaning in net
// syntax are written as {token} sequences.
var netNameEscapes = []struct{ raw, token string }{
	{"/", "{slash}"},
	{"\n", "{return}"},
	{"\r", "{return}"},
}

var unescapeTokens = map[string]string{
	"slash":     "/",
	"backslash": `\`,
	"dblquote":  `"`,
	"quote":     "'",
	"lt":        "<",
	"gt":        ">",
	"colon":     ":",
	"bar":       "|",
	"comma":     ",",
	"space":     " ",
	"dollar":    "$",
	"tab":       "\t",
	"return":    "\n",
	"brace":     "{",
}

// EscapeNetName escapes the characters a net name cannot carry literally.
func EscapeNetName(s string) string {
	for _, e := range netNameEscapes {
		s = strings.ReplaceAll(s, e.raw, e.token)
	}
	return s
}

// UnescapeString replaces {token} sequences with the characters they stand
// for. Unknown tokens are kept as written.
func UnescapeString(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			if end := strings.IndexByte(s[i+1:], '}'); end >= 0 {
				if raw, ok := unescapeTokens[s[i+1:i+1+end]]; ok {
					b.WriteString(raw)
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
