package app

import "strings"

const traceQueryLimit = 512

// traceQuery flattens a statement onto one line for span attributes and
// blanks quoted literals so player names never land in traces.
func traceQuery(query string) string {
	var b strings.Builder
	inLiteral := false
	for _, field := range strings.Fields(query) {
		if b.Len() > 0 && !inLiteral {
			b.WriteByte(' ')
		}
		for _, r := range field {
			switch {
			case r == '\'':
				if !inLiteral {
					b.WriteString("'?")
				} else {
					b.WriteByte('\'')
				}
				inLiteral = !inLiteral
			case !inLiteral:
				b.WriteRune(r)
			}
		}
		if b.Len() > traceQueryLimit {
			break
		}
	}

	out := b.String()
	if len(out) > traceQueryLimit {
		return out[:traceQueryLimit] + "..."
	}
	return out
}
