// Package bodyscan derives presentation metadata from stored HTML content:
// a plain-text excerpt and a word count, computed when a document is
// published. Content data is an opaque JSON document; the scanner only looks
// at the conventional "html" field and leaves everything else alone.
package bodyscan

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const excerptMaxRunes = 280

// HTMLField is the content-data key the scanner reads.
const HTMLField = "html"

type Result struct {
	Excerpt   string
	WordCount int
}

// Analyze strips markup from the HTML fragment and returns the excerpt and
// word count. An empty or unparseable body yields a zero Result, never an
// error: body stats are best-effort bookkeeping.
func Analyze(html string) Result {
	if strings.TrimSpace(html) == "" {
		return Result{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{}
	}

	doc.Find("script, style").Remove()

	// doc.Text() fuses adjacent elements ("<h1>A</h1><p>B</p>" -> "AB"),
	// so gather text nodes individually and let Fields collapse the rest.
	var parts []string
	collectText(doc.Selection, &parts)
	text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if text == "" {
		return Result{}
	}

	return Result{
		Excerpt:   truncate(text, excerptMaxRunes),
		WordCount: len(strings.Fields(text)),
	}
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			*parts = append(*parts, c.Text())
			return
		}
		collectText(c, parts)
	})
}

// AnalyzeDoc pulls the html field out of a content data document. Returns
// ok=false when the document carries no HTML body.
func AnalyzeDoc(data map[string]any) (Result, bool) {
	raw, ok := data[HTMLField].(string)
	if !ok {
		return Result{}, false
	}
	return Analyze(raw), true
}

// truncate cuts at the last word boundary before max runes, appending an
// ellipsis when anything was dropped.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
