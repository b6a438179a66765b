package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkedin-backend/internal/llm"
	"linkedin-backend/internal/tokens"
)

type stubLLM struct {
	output string
	err    error
	lastIn llm.GenerateInput
}

func (s *stubLLM) SummarizeProfile(ctx context.Context, input llm.SummarizeInput) (string, error) {
	return "", errors.New("not used")
}

func (s *stubLLM) GeneratePost(ctx context.Context, input llm.GenerateInput) (string, error) {
	s.lastIn = input
	return s.output, s.err
}

type stubPublisher struct {
	err      error
	calls    int
	lastText string
	lastURN  string
}

func (s *stubPublisher) Publish(ctx context.Context, accessToken, authorURN, text string) (string, error) {
	s.calls++
	s.lastURN = authorURN
	s.lastText = text
	if s.err != nil {
		return "", s.err
	}
	return "urn:li:share:1", nil
}

func newTestService(gen *stubLLM, pub *stubPublisher) (*Service, *MemoryRepo, *tokens.MemoryStore) {
	repo := NewMemoryRepo()
	store := tokens.NewMemoryStore()
	svc := NewService(repo, store, gen, pub)
	return svc, repo, store
}

func TestGenerateAppendsHashtagsAndStoresUnpublished(t *testing.T) {
	gen := &stubLLM{output: "Check this out"}
	svc, repo, _ := newTestService(gen, &stubPublisher{})

	post, err := svc.Generate(context.Background(), GenerateInput{
		UserID:     "u1",
		Skills:     []string{"Go"},
		Experience: []string{"5y backend"},
		Interests:  []string{"infra"},
		Trends:     []string{"AI"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := "Check this out #PersonalBranding #IndustryTrends"
	if post.Content != want {
		t.Fatalf("expected %q, got %q", want, post.Content)
	}
	if post.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if gen.lastIn.ProfileSummary != "Skills: Go, Experience: 5y backend, Interests: infra" {
		t.Fatalf("unexpected profile summary %q", gen.lastIn.ProfileSummary)
	}

	stored, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected exactly one post, got %d", len(stored))
	}
	if stored[0].PostedAt != nil {
		t.Fatalf("expected posted_at absent after generation")
	}
	if stored[0].CreatedAt.IsZero() {
		t.Fatalf("expected created_at set")
	}
}

func TestGenerateDefaultsTrendsWhenEmpty(t *testing.T) {
	gen := &stubLLM{output: "post"}
	svc, _, _ := newTestService(gen, &stubPublisher{})

	if _, err := svc.Generate(context.Background(), GenerateInput{UserID: "u1"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gen.lastIn.Trends) != 3 {
		t.Fatalf("expected default trends, got %v", gen.lastIn.Trends)
	}
	if gen.lastIn.Trends[0] != "AI in marketing" {
		t.Fatalf("unexpected default trends %v", gen.lastIn.Trends)
	}
}

func TestGenerateFailureCreatesNoRow(t *testing.T) {
	gen := &stubLLM{err: errors.New("model down")}
	svc, repo, _ := newTestService(gen, &stubPublisher{})

	_, err := svc.Generate(context.Background(), GenerateInput{UserID: "u1"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	stored, _ := repo.ListByUser(context.Background(), "u1")
	if len(stored) != 0 {
		t.Fatalf("expected no placeholder rows for failed generation, got %d", len(stored))
	}
}

func TestScheduleWithoutTokenDoesNothing(t *testing.T) {
	pub := &stubPublisher{}
	svc, repo, _ := newTestService(&stubLLM{output: "post"}, pub)

	post, err := svc.Generate(context.Background(), GenerateInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	err = svc.Schedule(context.Background(), "u1", post.ID, time.Now().UTC())
	if !errors.Is(err, ErrNoValidToken) {
		t.Fatalf("expected ErrNoValidToken, got %v", err)
	}
	if pub.calls != 0 {
		t.Fatalf("expected no platform call, got %d", pub.calls)
	}

	stored, _ := repo.GetByID(context.Background(), post.ID, "u1")
	if stored.PostedAt != nil {
		t.Fatalf("expected post untouched")
	}
}

func TestScheduleStampsCallerSuppliedTime(t *testing.T) {
	pub := &stubPublisher{}
	svc, repo, store := newTestService(&stubLLM{output: "post"}, pub)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	post, err := svc.Generate(context.Background(), GenerateInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := store.Put(context.Background(), "u1", "tok123", time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	scheduled := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	if err := svc.Schedule(context.Background(), "u1", post.ID, scheduled); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if pub.lastURN != "urn:li:person:u1" {
		t.Fatalf("unexpected author urn %q", pub.lastURN)
	}
	if pub.lastText != post.Content {
		t.Fatalf("published text differs from stored content")
	}

	stored, err := repo.GetByID(context.Background(), post.ID, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.PostedAt == nil {
		t.Fatalf("expected posted_at set")
	}
	if !stored.PostedAt.Equal(scheduled) {
		t.Fatalf("expected posted_at = scheduled time %v, got %v", scheduled, *stored.PostedAt)
	}
	if stored.Content != post.Content {
		t.Fatalf("content changed during scheduling")
	}
}

func TestSchedulePublishFailureLeavesPostUnchanged(t *testing.T) {
	pub := &stubPublisher{err: errors.New("status 422")}
	svc, repo, store := newTestService(&stubLLM{output: "post"}, pub)

	post, err := svc.Generate(context.Background(), GenerateInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_ = store.Put(context.Background(), "u1", "tok123", time.Hour)

	err = svc.Schedule(context.Background(), "u1", post.ID, time.Now().UTC())
	if !errors.Is(err, ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), post.ID, "u1")
	if stored.PostedAt != nil {
		t.Fatalf("expected post still unpublished after failed publish")
	}

	// A later retry with a working platform succeeds.
	pub.err = nil
	if err := svc.Schedule(context.Background(), "u1", post.ID, time.Now().UTC()); err != nil {
		t.Fatalf("retry Schedule: %v", err)
	}
}

func TestScheduleAlreadyPostedIsTerminal(t *testing.T) {
	pub := &stubPublisher{}
	svc, _, store := newTestService(&stubLLM{output: "post"}, pub)

	post, _ := svc.Generate(context.Background(), GenerateInput{UserID: "u1"})
	_ = store.Put(context.Background(), "u1", "tok123", time.Hour)

	if err := svc.Schedule(context.Background(), "u1", post.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	err := svc.Schedule(context.Background(), "u1", post.ID, time.Now().UTC())
	if !errors.Is(err, ErrAlreadyPosted) {
		t.Fatalf("expected ErrAlreadyPosted, got %v", err)
	}
	if pub.calls != 1 {
		t.Fatalf("expected no second platform call, got %d", pub.calls)
	}
}

func TestScheduleRejectsStampBeforeCreation(t *testing.T) {
	svc, _, store := newTestService(&stubLLM{output: "post"}, &stubPublisher{})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	post, _ := svc.Generate(context.Background(), GenerateInput{UserID: "u1"})
	_ = store.Put(context.Background(), "u1", "tok123", time.Hour)

	early := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	err := svc.Schedule(context.Background(), "u1", post.ID, early)
	if !errors.Is(err, ErrInvalidScheduleTime) {
		t.Fatalf("expected ErrInvalidScheduleTime, got %v", err)
	}
}

func TestScheduleUnknownPostIsNotFound(t *testing.T) {
	svc, _, store := newTestService(&stubLLM{output: "post"}, &stubPublisher{})
	_ = store.Put(context.Background(), "u1", "tok123", time.Hour)

	err := svc.Schedule(context.Background(), "u1", 999, time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyticsEmptyForUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(&stubLLM{output: "post"}, &stubPublisher{})

	list, err := svc.Analytics(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if list == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(list) != 0 {
		t.Fatalf("expected no posts, got %d", len(list))
	}
}

func TestAnalyticsOrdersByCreationTime(t *testing.T) {
	svc, repo, _ := newTestService(&stubLLM{output: "post"}, &stubPublisher{})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := repo.Create(context.Background(), Post{
			UserID:    "u1",
			Content:   "post",
			CreatedAt: base.Add(time.Duration(2-i) * time.Hour),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := svc.Analytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.Before(list[i-1].CreatedAt) {
			t.Fatalf("posts out of order: %v then %v", list[i-1].CreatedAt, list[i].CreatedAt)
		}
	}
}
