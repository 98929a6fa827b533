package mosaic

import (
	"regexp"
	"strings"
)

// templateToken matches {{var}} placeholders. Whitespace inside the braces
// is tolerated; the token name itself is a single identifier.
var templateToken = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// substituteTemplate replaces {{var}} tokens in the template, first from
// params, then from the execution context's shared values. Tokens matching
// neither source are left verbatim, so downstream consumers can substitute
// their own.
func substituteTemplate(template string, params Params, mc *Context) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return templateToken.ReplaceAllStringFunc(template, func(token string) string {
		name := templateToken.FindStringSubmatch(token)[1]
		if params != nil {
			if v, ok := params[name]; ok {
				return v
			}
		}
		if mc != nil {
			if v, ok := mc.Value(name); ok {
				return v
			}
		}
		return token
	})
}
