package document

import "strings"

// InjectCSS inserts css as a <style> block before </head>, after <body>, or
// in front of the document, whichever comes first.
func InjectCSS(html, css string) string {
	if css == "" {
		return html
	}
	style := "<style>" + strings.ReplaceAll(css, "</", `<\/`) + "</style>"
	lower := strings.ToLower(html)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return html[:idx] + style + html[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(html[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return html[:pos] + style + html[pos:]
		}
	}
	return style + html
}
