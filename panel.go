package mosaic

import (
	"fmt"
	"html"
)

// errorPanel builds the dismissable panel shown for recovered runtime
// errors. It carries a reload affordance so the user can retry without
// developer tooling.
func errorPanel(title string, err error) string {
	detail := ""
	if err != nil {
		detail = fmt.Sprintf("<p class=\"mosaic-panel-detail\">%s</p>", html.EscapeString(err.Error()))
	}
	return fmt.Sprintf(`<div class="mosaic-panel mosaic-panel-error">
<h2>%s</h2>
%s<button onclick="location.reload()">Reload</button>
<button onclick="this.parentElement.remove()">Dismiss</button>
</div>`, html.EscapeString(title), detail)
}

// notFoundPanel builds the fallback shown when no route matches and no
// custom not-found handling is configured.
func notFoundPanel(path string) string {
	return fmt.Sprintf(`<div class="mosaic-panel mosaic-panel-notfound">
<h2>404 Not Found</h2>
<p>No route matches <code>%s</code>.</p>
<button onclick="history.back()">Go back</button>
</div>`, html.EscapeString(path))
}
