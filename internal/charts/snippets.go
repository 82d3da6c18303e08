package charts

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// ChartSnippet represents an embeddable go-echarts chart fragment.
// Div should contain a single root <div id="..." style="..."></div>
// Script should contain the <script>...</script> block that initializes the chart in that div.
// HTML contains the complete snippet for template substitution: the ECharts
// loader script, the container and the init script. It is never a full document.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

const initScript = `<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`

// newSnippet assembles the fragment for a chart whose option is optJSON.
// fallback is optional markup placed inside the container, normally a <noscript> image.
func newSnippet(id, title, cdnURL string, optJSON []byte, height int, fallback string) ChartSnippet {
	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%dpx;\"></div>", id, height)
	script := fmt.Sprintf(initScript, id, string(optJSON))

	var b strings.Builder
	fmt.Fprintf(&b, "<script src=\"%s\"></script>\n", html.EscapeString(cdnURL))
	b.WriteString("<div class=\"chart-container\">\n\t")
	b.WriteString(div)
	if fallback != "" {
		b.WriteString("\n\t")
		b.WriteString(fallback)
	}
	b.WriteString("\n</div>\n")
	b.WriteString(script)

	return ChartSnippet{ID: id, Title: title, Div: div, Script: script, HTML: b.String()}
}

// chartID derives a DOM id from a chart title, e.g. "Value per date" -> "chart-value-per-date"
func chartID(title string) string {
	var b strings.Builder
	b.WriteString("chart")
	dash := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
