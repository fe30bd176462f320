package remedy

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"BlogAuditor/internal/audit"
	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/infrastructure/queue"
	"BlogAuditor/internal/ports"
)

type fakeSource map[string]domain.Article

func (s fakeSource) Fetch(_ context.Context, id string) (domain.Article, error) {
	article, ok := s[id]
	if !ok {
		return domain.Article{}, fmt.Errorf("%w: %s", ports.ErrArticleNotFound, id)
	}
	return article, nil
}

func (s fakeSource) List(_ context.Context) ([]domain.Article, error) {
	var articles []domain.Article
	for _, a := range s {
		articles = append(articles, a)
	}
	return articles, nil
}

type fakeUpdater struct {
	updates int
	err     error
}

func (u *fakeUpdater) Update(_ context.Context, _ string, _ domain.ArticleUpdate) error {
	if u.err != nil {
		return u.err
	}
	u.updates++
	return nil
}

type fakeRewriter struct {
	body string
	err  error
}

func (r *fakeRewriter) Rewrite(_ context.Context, _ domain.Article, _ string) (string, error) {
	return r.body, r.err
}

func testAuditConfig() audit.Config {
	cfg := audit.DefaultConfig()
	cfg.MinWords = 5
	cfg.MinImages = 1
	return cfg
}

const passingBody = `<p>Elderberry syrup brewing takes patient careful work every autumn season.</p>` +
	`<img src="https://i.pinimg.com/736x/a.jpg">` +
	`<h2>Sources</h2>` +
	`<p>Elderberry notes: <a href="https://extension.example.edu/elderberry">reference</a>.</p>`

const failingBody = `<p>In conclusion, elderberry syrup is nice to have around the kitchen.</p>` +
	`<img src="https://i.pinimg.com/736x/a.jpg">` +
	`<h2>Sources</h2>` +
	`<p>Elderberry notes: <a href="https://extension.example.edu/elderberry">reference</a>.</p>`

func newProcessor(t *testing.T, source fakeSource, updater *fakeUpdater, rewriter ports.Rewriter, maxAttempts int) (*Processor, *queue.Store) {
	t.Helper()

	cfg := testAuditConfig()
	store := queue.NewStore(filepath.Join(t.TempDir(), "queue.json"))
	proc := NewProcessor(ProcessorDeps{
		Store:       store,
		Source:      source,
		Updater:     updater,
		Registry:    DefaultRegistry(cfg, rewriter),
		AuditConfig: cfg,
		MaxAttempts: maxAttempts,
	})
	return proc, store
}

func enqueue(t *testing.T, store *queue.Store, id, title string, issues ...string) {
	t.Helper()
	if err := store.Upsert(id, title, domain.AuditReport{Issues: issues}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
}

func TestRunFixesFailingArticle(t *testing.T) {
	t.Parallel()

	source := fakeSource{"42": {ID: "42", Title: "Elderberry Syrup", BodyHTML: failingBody, Summary: "meta"}}
	updater := &fakeUpdater{}
	proc, store := newProcessor(t, source, updater, &fakeRewriter{body: passingBody}, 5)

	enqueue(t, store, "42", "Elderberry Syrup", string(domain.RuleNoGenericPhrases))

	summary, err := proc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Fixed != 1 || summary.Processed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if updater.updates != 1 {
		t.Fatalf("expected one platform update, got %d", updater.updates)
	}

	item, _, err := store.Item("42")
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if item.Status != domain.StatusDone {
		t.Fatalf("expected done, got %s", item.Status)
	}
}

func TestRunMarksRetryingOnRewriteError(t *testing.T) {
	t.Parallel()

	source := fakeSource{"42": {ID: "42", Title: "Elderberry Syrup", BodyHTML: failingBody, Summary: "meta"}}
	proc, store := newProcessor(t, source, &fakeUpdater{}, &fakeRewriter{err: fmt.Errorf("rate limited")}, 5)

	enqueue(t, store, "42", "Elderberry Syrup", string(domain.RuleNoGenericPhrases))

	summary, err := proc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Retried != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	item, _, err := store.Item("42")
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if item.Status != domain.StatusRetrying || item.Attempts != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.LastError == "" {
		t.Fatalf("expected recorded error")
	}
}

func TestRunParksAtAttemptCap(t *testing.T) {
	t.Parallel()

	source := fakeSource{"42": {ID: "42", Title: "Elderberry Syrup", BodyHTML: failingBody, Summary: "meta"}}
	proc, store := newProcessor(t, source, &fakeUpdater{}, &fakeRewriter{err: fmt.Errorf("down")}, 2)

	enqueue(t, store, "42", "Elderberry Syrup", string(domain.RuleNoGenericPhrases))

	for i := 0; i < 3; i++ {
		if _, err := proc.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	item, _, err := store.Item("42")
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if item.Status != domain.StatusManualReview {
		t.Fatalf("expected manual_review after cap, got %s", item.Status)
	}
}

func TestRunManualReviewWhenNoFixerMatches(t *testing.T) {
	t.Parallel()

	source := fakeSource{"42": {ID: "42", Title: "Elderberry Syrup", BodyHTML: failingBody}}
	proc, store := newProcessor(t, source, &fakeUpdater{}, &fakeRewriter{}, 5)

	enqueue(t, store, "42", "Elderberry Syrup", string(domain.RuleImageCountFloor))

	summary, err := proc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.ManualReview != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunManualReviewWhenArticleMissing(t *testing.T) {
	t.Parallel()

	proc, store := newProcessor(t, fakeSource{}, &fakeUpdater{}, &fakeRewriter{}, 5)
	enqueue(t, store, "42", "Gone", string(domain.RuleNoGenericPhrases))

	if _, err := proc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	item, _, err := store.Item("42")
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if item.Status != domain.StatusManualReview {
		t.Fatalf("expected manual_review for missing article, got %s", item.Status)
	}
}

func TestRunCounterIncrementsPerPass(t *testing.T) {
	t.Parallel()

	proc, _ := newProcessor(t, fakeSource{}, &fakeUpdater{}, &fakeRewriter{}, 5)

	first, err := proc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := proc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if second.RunCounter != first.RunCounter+1 {
		t.Fatalf("run counter did not advance: %d then %d", first.RunCounter, second.RunCounter)
	}
}

func TestSummaryFixerDerivesMeta(t *testing.T) {
	t.Parallel()

	fixer := NewSummaryFixer(testAuditConfig())
	update, err := fixer.Fix(context.Background(), domain.Article{
		Title:    "Elderberry Syrup",
		BodyHTML: "<p>Elderberry syrup keeps for months when refrigerated in sterile jars.</p>",
	})
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if update.Summary == nil || *update.Summary == "" {
		t.Fatalf("expected derived summary")
	}
	if update.BodyHTML != nil {
		t.Fatalf("summary fixer must not touch the body")
	}
}
