package markdown

import (
	"strings"
	"testing"
)

func TestToHTML_ExternalLinksOpenInNewTab(t *testing.T) {
	html := string(ToHTML("[wiki](https://wiki.example.com/sword)", Options{
		RootURL: "https://games.example.com",
	}))

	if !strings.Contains(html, `href="https://wiki.example.com/sword"`) {
		t.Fatalf("expected external href, got %s", html)
	}
	if !strings.Contains(html, `target="_blank"`) {
		t.Fatalf("expected target blank, got %s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("expected external rel attrs, got %s", html)
	}
}

func TestToHTML_NormalizesSameDomainAbsoluteLinks(t *testing.T) {
	html := string(ToHTML("[same](https://games.example.com/dashboard?x=1#k)", Options{
		RootURL: "https://games.example.com/",
	}))

	if !strings.Contains(html, `href="/dashboard?x=1#k"`) {
		t.Fatalf("expected normalized same-domain href, got %s", html)
	}
	if strings.Contains(html, `target="_blank"`) || strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("did not expect new-tab attrs for same-domain links, got %s", html)
	}
}

func TestToHTML_RelativeLinksStayInTab(t *testing.T) {
	html := string(ToHTML("[home](/dashboard)", Options{}))

	if !strings.Contains(html, `href="/dashboard"`) {
		t.Fatalf("expected relative href, got %s", html)
	}
	if strings.Contains(html, `target="_blank"`) {
		t.Fatalf("did not expect target blank for relative link, got %s", html)
	}
}

func TestToHTML_DropsRawHTML(t *testing.T) {
	html := string(ToHTML("Sharp <script>alert(1)</script> blade", Options{}))

	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw html to be dropped, got %s", html)
	}
}

func TestToHTML_HighlightsCodeBlocks(t *testing.T) {
	source := "```lua\nprint(\"crit\")\n```"
	html := string(ToHTML(source, Options{}))

	if !strings.Contains(html, `class="chroma"`) {
		t.Fatalf("expected chroma class for fenced code block, got %s", html)
	}
	if !strings.Contains(html, "crit") {
		t.Fatalf("expected code content in rendered block, got %s", html)
	}
}

func TestToHTML_RendersInlineCodeClass(t *testing.T) {
	html := string(ToHTML("Equip with `/equip sword`.", Options{}))

	if !strings.Contains(html, `<code class="inline-code">/equip sword</code>`) {
		t.Fatalf("expected inline code class, got %s", html)
	}
}

func TestToHTML_EmptyInput(t *testing.T) {
	if html := ToHTML("   ", Options{}); html != "" {
		t.Fatalf("expected empty output, got %q", html)
	}
}

func TestChromaCSSCoversBothSchemes(t *testing.T) {
	css := string(ChromaCSS())

	if !strings.Contains(css, "prefers-color-scheme: light") || !strings.Contains(css, "prefers-color-scheme: dark") {
		t.Fatalf("expected light and dark blocks, got %s", css)
	}
}
