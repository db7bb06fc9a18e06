package document

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

const htmlResumeDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Resume</title>
</head>
<body>
%s
</body>
</html>
`

const legacyResumeDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Resume - %s</title>
</head>
<body>
%s
</body>
</html>
`

// listPrefixes are the bullet markers recognised at the start of a line.
var listPrefixes = []string{"- ", "* ", "• "}

// IsHTMLContent reports whether resume content was produced by one of the
// HTML generators rather than typed as legacy plain text.
func IsHTMLContent(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "<")
}

// FormatResumeForPDF turns resume content into a standalone HTML document.
//
// HTML content is wrapped verbatim. Anything else is treated as legacy
// markdown-like text: it is escaped and converted line by line into
// headings, bullet lists, horizontal rules and <br>-joined paragraphs.
func FormatResumeForPDF(fullName, content string) string {
	if IsHTMLContent(content) {
		return fmt.Sprintf(htmlResumeDocument, content)
	}
	body := legacyToHTML(content)
	return fmt.Sprintf(legacyResumeDocument, html.EscapeString(fullName), body)
}

// legacyFormatter accumulates output while walking the lines of a legacy
// resume.
type legacyFormatter struct {
	out       strings.Builder
	paragraph []string
	inList    bool
}

func (f *legacyFormatter) flushParagraph() {
	if len(f.paragraph) == 0 {
		return
	}
	f.out.WriteString("<p>")
	f.out.WriteString(strings.Join(f.paragraph, "<br>"))
	f.out.WriteString("</p>")
	f.paragraph = f.paragraph[:0]
}

func (f *legacyFormatter) closeList() {
	if f.inList {
		f.out.WriteString("</ul>")
		f.inList = false
	}
}

func (f *legacyFormatter) block(tag, text string) {
	f.closeList()
	f.flushParagraph()
	f.out.WriteString("<" + tag + ">" + strings.TrimSpace(text) + "</" + tag + ">")
}

func legacyToHTML(content string) string {
	escaped := html.EscapeString(content)
	f := &legacyFormatter{}

	for _, line := range strings.Split(escaped, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			f.flushParagraph()
			f.closeList()
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			f.block("h1", line[2:])
		case strings.HasPrefix(line, "## "):
			f.block("h2", line[3:])
		case strings.HasPrefix(line, "### "):
			f.block("h3", line[4:])
		case isListItem(line):
			item, _ := cutListPrefix(line)
			f.flushParagraph()
			if !f.inList {
				f.out.WriteString("<ul>")
				f.inList = true
			}
			f.out.WriteString("<li>" + convertBold(item) + "</li>")
		case line == "---" || line == "***" || line == "___":
			f.closeList()
			f.flushParagraph()
			f.out.WriteString("<hr>")
		default:
			f.closeList()
			f.paragraph = append(f.paragraph, convertBold(line))
		}
	}

	f.flushParagraph()
	f.closeList()
	return f.out.String()
}

func isListItem(line string) bool {
	_, ok := cutListPrefix(line)
	return ok
}

// cutListPrefix strips a leading bullet marker and returns the trimmed item.
func cutListPrefix(line string) (string, bool) {
	for _, prefix := range listPrefixes {
		if item, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(item), true
		}
	}
	return "", false
}

func convertBold(s string) string {
	return boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
}
