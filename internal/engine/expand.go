package engine

import (
	"strings"

	"github.com/emberline-dev/emberline/internal/models"
)

// maxExpandedLen bounds the expanded string, matching the fixed buffer of
// the embedded target.
const maxExpandedLen = models.MaxOutputLen

// ExpandVariables replaces each ${name} token with the stringified value
// from the variable store. Unresolved references are copied through
// literally so a broken rule stays diagnosable. The result is truncated
// at a fixed bound rather than growing without limit.
func (e *Engine) ExpandVariables(input string) string {
	if !strings.Contains(input, "${") {
		return models.Truncate(input, maxExpandedLen)
	}

	var b strings.Builder
	for i := 0; i < len(input); {
		if input[i] == '$' && i+1 < len(input) && input[i+1] == '{' {
			if end := strings.IndexByte(input[i+2:], '}'); end >= 0 {
				name := input[i+2 : i+2+end]
				if v, err := e.opts.Vars.Get(name); err == nil {
					b.WriteString(v.String())
				} else {
					b.WriteString(input[i : i+2+end+1])
				}
				i += end + 3
				continue
			}
		}
		b.WriteByte(input[i])
		i++
	}
	return models.Truncate(b.String(), maxExpandedLen)
}
