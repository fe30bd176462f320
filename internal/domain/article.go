package domain

import "time"

// Article is the read-only snapshot of a published blog post as delivered by
// the hosting platform. The audit engine never mutates it.
type Article struct {
	ID            string
	Title         string
	BodyHTML      string
	Summary       string
	FeaturedImage string
	PublishedAt   time.Time
}

// ArticleUpdate is the partial field set a fixer sends back to the platform.
// Nil fields are left untouched.
type ArticleUpdate struct {
	BodyHTML      *string
	Summary       *string
	FeaturedImage *string
}

// AnalysisResult captures everything the analyzer extracts from one article
// body. It is recomputed on every audit call and never cached.
type AnalysisResult struct {
	WordCount        int
	ImageCount       int
	ValuedImageCount int
	TableCount       int
	BlockquoteCount  int
	Headings         []string
	OutboundLinks    []string
	GenericFound     []string
	YearTokens       []string
	FirstParagraph   string
	LastParagraph    string
	TopicKeywords    []string
}

// Empty reports whether the analyzed body carried no usable text at all.
func (r AnalysisResult) Empty() bool {
	return r.WordCount == 0
}
