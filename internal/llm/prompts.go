package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/summarize.txt
	summarizeTemplate string
	//go:embed prompts/generate_post.txt
	generatePostTemplate string
)

// SummarizePrompt renders the profile-summary prompt.
func SummarizePrompt(input SummarizeInput) string {
	r := strings.NewReplacer(
		"{{skills}}", strings.Join(input.Skills, ", "),
		"{{experience}}", strings.Join(input.Experience, ", "),
		"{{interests}}", strings.Join(input.Interests, ", "),
	)
	return strings.TrimSpace(r.Replace(summarizeTemplate))
}

// GeneratePostPrompt renders the post-generation prompt.
func GeneratePostPrompt(input GenerateInput) string {
	r := strings.NewReplacer(
		"{{profile_summary}}", input.ProfileSummary,
		"{{trends}}", strings.Join(input.Trends, ", "),
	)
	return strings.TrimSpace(r.Replace(generatePostTemplate))
}
