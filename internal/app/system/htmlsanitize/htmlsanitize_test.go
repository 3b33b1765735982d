package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/ngohub/internal/app/system/htmlsanitize"
)

func TestSanitize_Preserved(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "We are a non-profit organization."},
		{"inline formatting", "<p><strong>Bold</strong> and <em>italic</em></p>"},
		{"unordered list", "<ul><li>Item 1</li><li>Item 2</li></ul>"},
		{"ordered list", "<ol><li>First</li><li>Second</li></ol>"},
		{"blockquote", "<blockquote>A quote</blockquote>"},
		{"headings", "<h1>Heading 1</h1><h2>Heading 2</h2><h3>Heading 3</h3>"},
		{"table", `<table><thead><tr><th>Header</th></tr></thead><tbody><tr><td>Cell</td></tr></tbody></table>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tt.input); got != tt.input {
				t.Errorf("expected %q preserved, got %q", tt.input, got)
			}
		})
	}
}

func TestSanitize_Removes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		banned string
		keep   string
	}{
		{"script", "<p>Hello</p><script>alert('xss')</script>", "script", "Hello"},
		{"onclick", `<p onclick="alert('xss')">Click</p>`, "onclick", "Click"},
		{"javascript href", `<a href="javascript:alert('xss')">Click</a>`, "javascript:", "Click"},
		{"iframe", `<p>Content</p><iframe src="https://evil.com"></iframe>`, "iframe", "Content"},
		{"style block", `<style>body { color: red; }</style><p>Text</p>`, "color: red", "Text"},
		{"onerror", `<img src="x" onerror="alert('xss')">`, "onerror", ""},
		{"form", `<form action="/submit"><input type="text" name="data"></form><p>ok</p>`, "<input", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.input)
			if strings.Contains(got, tt.banned) {
				t.Errorf("expected %q removed, got %q", tt.banned, got)
			}
			if !strings.Contains(got, tt.keep) {
				t.Errorf("expected %q kept, got %q", tt.keep, got)
			}
		})
	}
}

func TestSanitize_SafeLink(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("expected link preserved, got %q", got)
	}
}

func TestSanitize_TableAttributes(t *testing.T) {
	got := htmlsanitize.Sanitize(`<table class="grid"><tr><td colspan="2" rowspan="2">Cell</td></tr></table>`)
	for _, want := range []string{`class="grid"`, `colspan="2"`, `rowspan="2"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s preserved, got %q", want, got)
		}
	}
}

func TestSanitizeToHTML(t *testing.T) {
	if got := htmlsanitize.SanitizeToHTML("<p>Hello</p><script>x()</script>"); got != template.HTML("<p>Hello</p>") {
		t.Errorf("got %q", got)
	}
	if got := htmlsanitize.SanitizeToHTML(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.input); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2\r\nLine 3", "<p>Line 1<br>Line 2<br>Line 3</p>"},
		{"A & B", "<p>A &amp; B</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PlainTextToHTML(tt.input); got != tt.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	got := htmlsanitize.PlainTextToHTML("<script>alert('xss')</script>")
	if strings.Contains(got, "<script>") || !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected markup escaped, got %q", got)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  template.HTML
	}{
		{"empty", "", ""},
		{"plain", "Hello, World!", "<p>Hello, World!</p>"},
		{"plain newlines", "Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"markup", "<p>Hello</p>", "<p>Hello</p>"},
		{"dangerous markup", "<p>Hello</p><script>alert(1)</script>", "<p>Hello</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PrepareForDisplay(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
