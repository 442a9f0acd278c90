package markup

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML_Outline(t *testing.T) {
	input := `## Hook
- **Did you know** most budgets fail in week one?
  - Show the receipt pile

| Section | Time |
|---|---|
| Intro | 0:15 |

~~old take~~`

	out, err := MarkdownToHTML(input)
	if err != nil {
		t.Fatalf("MarkdownToHTML: %v", err)
	}
	for _, want := range []string{
		`<h2 id="hook">Hook</h2>`,
		"<strong>Did you know</strong>",
		"<ul>",
		"<table>",
		"<td>0:15</td>",
		"<del>old take</del>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "<ul>") != 2 {
		t.Errorf("expected a nested list, got:\n%s", out)
	}
}

func TestMarkdownToHTML_EscapesRawHTML(t *testing.T) {
	out, err := MarkdownToHTML("Hi <script>alert(1)</script> [x](javascript:alert(1))")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw script tag passed through: %s", out)
	}
	if strings.Contains(out, `href="javascript:`) {
		t.Errorf("javascript link passed through: %s", out)
	}
}

func TestMarkdownToHTML_HardWraps(t *testing.T) {
	out, _ := MarkdownToHTML("[HOST]: Welcome back\n[HOST]: Today we talk money")
	if !strings.Contains(out, "<br>") && !strings.Contains(out, "<br />") {
		t.Errorf("expected line breaks to be kept: %s", out)
	}
}

func TestMarkdownToHTML_Empty(t *testing.T) {
	out, err := MarkdownToHTML("  \n")
	if err != nil || out != "" {
		t.Errorf("MarkdownToHTML(blank) = %q, %v", out, err)
	}
}

func TestScriptToHTML(t *testing.T) {
	doc, err := ScriptToHTML("Budget <101>", "# Intro\nHello")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Errorf("not a full document: %s", doc)
	}
	if !strings.Contains(doc, "<title>Budget &lt;101&gt;</title>") {
		t.Errorf("title not escaped: %s", doc)
	}
	if !strings.Contains(doc, `<article class="script">`) || !strings.Contains(doc, "<h1") {
		t.Errorf("body not rendered: %s", doc)
	}
}
