package bodyscan

import (
	"strings"
	"testing"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		excerpt   string
		wordCount int
	}{
		{
			name:      "plain paragraph",
			html:      "<p>Hello world</p>",
			excerpt:   "Hello world",
			wordCount: 2,
		},
		{
			name:      "nested markup",
			html:      "<div><h1>Title</h1><p>Some <strong>bold</strong> text.</p></div>",
			excerpt:   "Title Some bold text.",
			wordCount: 4,
		},
		{
			name:      "adjacent blocks separated",
			html:      "<p>First.</p><p>Second.</p>",
			excerpt:   "First. Second.",
			wordCount: 2,
		},
		{
			name:      "script and style stripped",
			html:      "<p>Visible</p><script>var x = 1;</script><style>p{color:red}</style>",
			excerpt:   "Visible",
			wordCount: 1,
		},
		{
			name:      "whitespace collapsed",
			html:      "<p>one\n\n   two\tthree</p>",
			excerpt:   "one two three",
			wordCount: 3,
		},
		{
			name: "empty body",
			html: "   ",
		},
		{
			name: "markup only",
			html: "<div><img src='/a.png'/></div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.html)
			if got.Excerpt != tt.excerpt {
				t.Errorf("excerpt = %q, want %q", got.Excerpt, tt.excerpt)
			}
			if got.WordCount != tt.wordCount {
				t.Errorf("word count = %d, want %d", got.WordCount, tt.wordCount)
			}
		})
	}
}

func TestAnalyzeLongBodyTruncates(t *testing.T) {
	html := "<p>" + strings.Repeat("word ", 200) + "</p>"
	got := Analyze(html)

	if got.WordCount != 200 {
		t.Errorf("word count = %d, want 200", got.WordCount)
	}
	if len([]rune(got.Excerpt)) > excerptMaxRunes+1 {
		t.Errorf("excerpt too long: %d runes", len([]rune(got.Excerpt)))
	}
	if !strings.HasSuffix(got.Excerpt, "…") {
		t.Error("truncated excerpt should end with ellipsis")
	}
}

func TestAnalyzeDoc(t *testing.T) {
	if _, ok := AnalyzeDoc(map[string]any{"blocks": []any{}}); ok {
		t.Error("doc without html field should report ok=false")
	}

	res, ok := AnalyzeDoc(map[string]any{"html": "<p>two words</p>"})
	if !ok || res.WordCount != 2 {
		t.Errorf("AnalyzeDoc = %+v ok=%v, want 2 words", res, ok)
	}
}
