package audit

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"BlogAuditor/internal/domain"
)

const maxTopicKeywords = 3

var (
	titleTokenExpr = regexp.MustCompile(`[A-Za-z]{4,}`)
	tagExpr        = regexp.MustCompile(`<[^>]*>`)
	yearExpr       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Analyze extracts plain text, structure, images, links, and phrase matches
// from one article body. It is deterministic and has no side effects; calling
// it twice with the same inputs yields identical results.
func Analyze(cfg Config, bodyHTML, title string) domain.AnalysisResult {
	result := domain.AnalysisResult{
		TopicKeywords: topicKeywords(cfg, title),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		// Unparseable input degrades to tag-stripped text so word count and
		// phrase detection still work on the readable remainder.
		text := collapseWhitespace(tagExpr.ReplaceAllString(bodyHTML, " "))
		result.WordCount = len(strings.Fields(text))
		result.GenericFound = genericPhrases(cfg, text)
		result.YearTokens = yearExpr.FindAllString(text, -1)
		return result
	}

	text := collapseWhitespace(extractText(doc))
	result.WordCount = len(strings.Fields(text))
	result.GenericFound = genericPhrases(cfg, text)
	result.YearTokens = yearExpr.FindAllString(text, -1)

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok {
			return
		}
		result.ImageCount++
		if hostValued(cfg.ValuedHosts, src) {
			result.ValuedImageCount++
		}
	})

	doc.Find("h2").Each(func(_ int, h *goquery.Selection) {
		result.Headings = append(result.Headings, collapseWhitespace(h.Text()))
	})

	result.TableCount = doc.Find("table").Length()
	result.BlockquoteCount = doc.Find("blockquote").Length()

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if outboundLink(cfg.SiteDomain, href) {
			result.OutboundLinks = append(result.OutboundLinks, href)
		}
	})

	paragraphs := doc.Find("p")
	if paragraphs.Length() > 0 {
		result.FirstParagraph = collapseWhitespace(paragraphs.First().Text())
		result.LastParagraph = collapseWhitespace(paragraphs.Last().Text())
	}

	return result
}

// extractText walks the parsed tree joining text nodes with spaces, so words
// in adjacent elements do not fuse the way a naive Text() call would produce.
func extractText(doc *goquery.Document) string {
	var sb strings.Builder
	for _, node := range doc.Selection.Nodes {
		appendText(node, &sb)
	}
	return sb.String()
}

func appendText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(c, sb)
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func genericPhrases(cfg Config, text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, phrase := range cfg.GenericPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			found = append(found, phrase)
		}
	}
	return found
}

func topicKeywords(cfg Config, title string) []string {
	var keywords []string
	for _, token := range titleTokenExpr.FindAllString(title, -1) {
		token = strings.ToLower(token)
		if stopword(cfg.TitleStopwords, token) {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == maxTopicKeywords {
			break
		}
	}
	return keywords
}

func stopword(stopwords []string, token string) bool {
	for _, sw := range stopwords {
		if token == sw {
			return true
		}
	}
	return false
}

func hostValued(hosts []string, src string) bool {
	for _, host := range hosts {
		if host != "" && strings.Contains(src, host) {
			return true
		}
	}
	return false
}

func outboundLink(siteDomain, href string) bool {
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return false
	}
	if siteDomain != "" && strings.Contains(href, siteDomain) {
		return false
	}
	return true
}
