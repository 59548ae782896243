// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"strings"
)

// Arg substitutes positional placeholders in a translation template.
//
// Two marker styles are recognised:
//   - Qt style "%1" to "%99" refer to args[0] to args[98].
//   - Python str.format style "{}" takes the next argument in turn, and
//     "{0}", "{1}", ... refer to an argument by 0-based index. "{{" and "}}"
//     produce literal braces.
//
// Markers that refer to a missing argument are left untouched. Arguments
// are formatted with fmt.Sprint. Without args, s is returned unchanged.
func Arg(s string, args ...any) string {
	if len(args) == 0 {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	next := 0

	for i := 0; i < len(s); {
		switch s[i] {
		case '%':
			n, width := digits(s[i+1:], 2)
			if width > 0 && n >= 1 && n <= len(args) {
				b.WriteString(fmt.Sprint(args[n-1]))
				i += 1 + width

				continue
			}
		case '{':
			if strings.HasPrefix(s[i:], "{{") {
				b.WriteByte('{')
				i += 2

				continue
			}

			n, width := digits(s[i+1:], 2)
			if i+1+width < len(s) && s[i+1+width] == '}' {
				idx := n
				if width == 0 {
					idx = next
					next++
				}

				if idx < len(args) {
					b.WriteString(fmt.Sprint(args[idx]))
					i += 2 + width

					continue
				}
			}
		case '}':
			if strings.HasPrefix(s[i:], "}}") {
				b.WriteByte('}')
				i += 2

				continue
			}
		}

		b.WriteByte(s[i])
		i++
	}

	return b.String()
}

// digits parses up to limit leading ASCII digits of s.
func digits(s string, limit int) (n, width int) {
	for width < limit && width < len(s) && s[width] >= '0' && s[width] <= '9' {
		n = n*10 + int(s[width]-'0')
		width++
	}

	return n, width
}
