package audit

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeExtractsStructure(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SiteDomain = "the-rike.com"

	html := `
	<h2>Growing Basics</h2>
	<p>Elderberry bushes thrive in damp soil.</p>
	<img src="https://i.pinimg.com/736x/ab/cd/elderberry.jpg">
	<img src="https://example.org/photo.jpg">
	<table><tr><td>Variety</td></tr></table>
	<blockquote>Prune in late winter.</blockquote>
	<h2>Sources &amp; Further Reading</h2>
	<p>See the <a href="https://extension.example.edu/elderberry">extension guide</a>
	and our <a href="https://the-rike.com/blogs/news/syrup">own recipe</a>.</p>`

	res := Analyze(cfg, html, "Homemade Elderberry Syrup")

	if res.ImageCount != 2 {
		t.Fatalf("expected 2 images, got %d", res.ImageCount)
	}
	if res.ValuedImageCount != 1 {
		t.Fatalf("expected 1 valued image, got %d", res.ValuedImageCount)
	}
	if res.TableCount != 1 || res.BlockquoteCount != 1 {
		t.Fatalf("unexpected table/blockquote counts: %d/%d", res.TableCount, res.BlockquoteCount)
	}
	if len(res.Headings) != 2 || res.Headings[0] != "Growing Basics" {
		t.Fatalf("unexpected headings: %v", res.Headings)
	}
	if len(res.OutboundLinks) != 1 || !strings.Contains(res.OutboundLinks[0], "extension.example.edu") {
		t.Fatalf("unexpected outbound links: %v", res.OutboundLinks)
	}
	if !strings.Contains(res.FirstParagraph, "Elderberry bushes") {
		t.Fatalf("unexpected first paragraph: %q", res.FirstParagraph)
	}
	if !strings.Contains(res.LastParagraph, "extension guide") {
		t.Fatalf("unexpected last paragraph: %q", res.LastParagraph)
	}
}

func TestAnalyzeTopicKeywords(t *testing.T) {
	t.Parallel()

	res := Analyze(DefaultConfig(), "<p>body</p>", "This Comprehensive Guide to Homemade Elderberry Syrup Jars")

	want := []string{"homemade", "elderberry", "syrup"}
	if !reflect.DeepEqual(res.TopicKeywords, want) {
		t.Fatalf("expected keywords %v, got %v", want, res.TopicKeywords)
	}
}

func TestAnalyzeGenericPhraseBoundary(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	res := Analyze(cfg, "<p>In Conclusion, simmer the berries slowly.</p>", "Syrup")
	found := false
	for _, phrase := range res.GenericFound {
		if phrase == "in conclusion" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'in conclusion' in generic matches, got %v", res.GenericFound)
	}

	res = Analyze(cfg, "<p>The conclusion of the study was positive.</p>", "Syrup")
	for _, phrase := range res.GenericFound {
		if phrase == "in conclusion" {
			t.Fatalf("'conclusion' alone must not match the configured phrase")
		}
	}
}

func TestAnalyzeGenericOrderPreserved(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	res := Analyze(cfg, "<p>Let's dive right in. This is a comprehensive guide.</p>", "Syrup")

	want := []string{"comprehensive guide", "let's dive"}
	if !reflect.DeepEqual(res.GenericFound, want) {
		t.Fatalf("expected configured order %v, got %v", want, res.GenericFound)
	}
}

func TestAnalyzeYearTokens(t *testing.T) {
	t.Parallel()

	res := Analyze(DefaultConfig(), "<p>Updated for 2024 harvests in plot 1234.</p>", "Syrup")
	if len(res.YearTokens) != 1 || res.YearTokens[0] != "2024" {
		t.Fatalf("expected single year token 2024, got %v", res.YearTokens)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	html := `<h2>Sources</h2><p>Elderberry syrup with <a href="https://example.org/a">one source</a>.</p><img src="https://i.pinimg.com/x.jpg">`

	first := Analyze(cfg, html, "Homemade Elderberry Syrup")
	second := Analyze(cfg, html, "Homemade Elderberry Syrup")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analyze is not idempotent: %+v vs %+v", first, second)
	}
}

func TestAnalyzeEmptyBody(t *testing.T) {
	t.Parallel()

	res := Analyze(DefaultConfig(), "", "Homemade Elderberry Syrup")
	if !res.Empty() {
		t.Fatalf("expected empty result for empty body")
	}
	if len(res.TopicKeywords) == 0 {
		t.Fatalf("topic keywords should still derive from the title")
	}
}
