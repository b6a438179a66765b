package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linkedin-backend/internal/llm"
)

// ErrGenerationFailed indicates the LLM call failed after the profile was
// already committed.
var ErrGenerationFailed = errors.New("profile summary generation failed")

// Service contains business logic for profile analysis.
type Service struct {
	Repo Repo
	LLM  llm.Client
}

func NewService(repo Repo, llmClient llm.Client) *Service {
	return &Service{Repo: repo, LLM: llmClient}
}

// Analyze upserts the profile and returns an LLM summary of it. The upsert is
// committed before summarization starts; a generation failure never rolls it
// back.
func (s *Service) Analyze(ctx context.Context, profile Profile) (string, error) {
	if s == nil || s.Repo == nil {
		return "", errors.New("profiles service not configured")
	}
	if strings.TrimSpace(profile.UserID) == "" {
		return "", errors.New("user id is required")
	}

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return "", fmt.Errorf("upsert profile: %w", err)
	}

	summary, err := s.LLM.SummarizeProfile(ctx, llm.SummarizeInput{
		Skills:     profile.Skills,
		Experience: profile.Experience,
		Interests:  profile.Interests,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return summary, nil
}

// Get returns the stored profile for a user.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("profiles service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Profile{}, errors.New("user id is required")
	}
	return s.Repo.GetByUserID(ctx, userID)
}
