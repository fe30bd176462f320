package audit

// Config carries every threshold and pattern list the analyzer and evaluator
// consult. Keeping them in one injected object (instead of literals scattered
// per caller) is what lets batch jobs and tests agree on the same gate.
type Config struct {
	// MinWords is the word-count floor for the stripped body text.
	MinWords int
	// MinImages is the floor for total <img> elements.
	MinImages int
	// GenericPhrases are matched case-insensitively against the plain text;
	// results preserve this order.
	GenericPhrases []string
	// ValuedHosts is the allowlist of trusted image hosts (platform CDN,
	// recognized providers). Substring match on the img src.
	ValuedHosts []string
	// SiteDomain excludes the blog's own links from the outbound-link list.
	SiteDomain string
	// TitleStopwords are dropped when extracting topic keywords from titles.
	TitleStopwords []string
	// SourcesKeywords mark a heading as a sources/citations section.
	SourcesKeywords []string
}

// DefaultConfig returns the editorial gate used for published articles.
func DefaultConfig() Config {
	return Config{
		MinWords:  1600,
		MinImages: 3,
		GenericPhrases: []string{
			"comprehensive guide", "in this guide", "this guide",
			"in today's world", "in today's fast-paced",
			"you will learn", "by the end", "throughout this article",
			"we'll explore", "let's dive", "let's explore",
			"in conclusion", "to sum up", "in summary",
			"thank you for reading", "happy growing", "happy gardening",
			"whether you're a beginner", "whether you are new",
			"game-changer", "unlock the potential", "master the art",
			"elevate your", "transform your", "empower yourself",
			"crucial to understand", "it's essential", "it is essential",
		},
		ValuedHosts:     []string{"cdn.shopify.com", "pinimg.com"},
		SiteDomain:      "",
		TitleStopwords:  []string{"this", "that", "with", "from", "your", "guide", "comprehensive"},
		SourcesKeywords: []string{"sources", "references", "further reading"},
	}
}
