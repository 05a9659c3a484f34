// Package advisor calls an OpenAI-compatible chat gateway to generate study
// and career recommendations from a student profile.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"eduPath/internal/config"
)

var (
	// ErrRateLimited maps the gateway's 429 response.
	ErrRateLimited = errors.New("rate limit exceeded, please try again later")
	// ErrQuotaExhausted maps the gateway's 402 response.
	ErrQuotaExhausted = errors.New("AI credits exhausted, please contact support")
)

// ProfileInput is the student profile summary sent to the gateway.
type ProfileInput struct {
	EducationLevel     string   `json:"education_level"`
	GPA                string   `json:"gpa"`
	Interests          []string `json:"interests"`
	Skills             []string `json:"skills"`
	PreferredCountries []string `json:"preferred_countries"`
	BudgetRange        string   `json:"budget_range"`
}

// UniversityOption is one institution the gateway may recommend.
type UniversityOption struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// Recommendation is the structured response expected from the model.
type Recommendation struct {
	RecommendedPrograms     []ProgramSuggestion    `json:"recommended_programs"`
	CareerSuggestions       []CareerSuggestion     `json:"career_suggestions"`
	RecommendedUniversities []UniversitySuggestion `json:"recommended_universities"`
	NextSteps               []string               `json:"next_steps"`
	Summary                 string                 `json:"summary"`
}

// ProgramSuggestion pairs a program name with the reason it fits.
type ProgramSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CareerSuggestion pairs a career title with a short description.
type CareerSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UniversitySuggestion names one institution from the offered list.
type UniversitySuggestion struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Client talks to the chat-completions gateway.
type Client struct {
	httpClient *http.Client
	gatewayURL string
	apiKey     string
	model      string
	logger     *slog.Logger
}

// NewClient constructs the gateway client from config.
func NewClient(cfg config.AdvisorConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		gatewayURL: cfg.GatewayURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Recommend sends the profile and university list to the gateway and parses
// the model's JSON answer. Unparseable model output degrades to the default
// recommendation object; it is never surfaced as an error.
func (c *Client) Recommend(ctx context.Context, profile ProfileInput, universities []UniversityOption) (Recommendation, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(universities)},
			{Role: "user", Content: userPrompt(profile)},
		},
	})
	if err != nil {
		return Recommendation{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return Recommendation{}, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Recommendation{}, fmt.Errorf("call ai gateway: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return Recommendation{}, ErrRateLimited
	case http.StatusPaymentRequired:
		return Recommendation{}, ErrQuotaExhausted
	default:
		return Recommendation{}, fmt.Errorf("ai gateway returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return Recommendation{}, fmt.Errorf("decode gateway response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return Recommendation{}, errors.New("ai gateway returned no choices")
	}

	return parseRecommendation(chat.Choices[0].Message.Content, c.logger), nil
}

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\n?(.*?)\\n?```")

// parseRecommendation extracts the JSON object from the model output,
// tolerating a markdown code fence. Anything unparseable yields the default
// recommendation instead of an error.
func parseRecommendation(content string, logger *slog.Logger) Recommendation {
	jsonStr := content
	if m := codeFencePattern.FindStringSubmatch(content); m != nil {
		jsonStr = m[1]
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(strings.TrimSpace(jsonStr)), &rec); err != nil {
		logger.Warn("unparseable model output, using default recommendation", slog.Any("error", err))
		return DefaultRecommendation()
	}
	return rec
}

// DefaultRecommendation is the safe fallback when the model output cannot be
// parsed.
func DefaultRecommendation() Recommendation {
	return Recommendation{
		RecommendedPrograms:     []ProgramSuggestion{},
		CareerSuggestions:       []CareerSuggestion{},
		RecommendedUniversities: []UniversitySuggestion{},
		NextSteps:               []string{"Complete your profile for better recommendations"},
		Summary:                 "We couldn't generate personalized recommendations. Please try again.",
	}
}

func systemPrompt(universities []UniversityOption) string {
	list, _ := json.MarshalIndent(universities, "", "  ")
	return fmt.Sprintf(`You are an expert academic career counselor with deep knowledge of international universities and career paths. Analyze the student's profile and provide personalized recommendations.

Your response MUST be valid JSON with this exact structure:
{
  "recommended_programs": [
    { "name": "Program Name", "reason": "Brief reason why this program suits the student" }
  ],
  "career_suggestions": [
    { "title": "Career Title", "description": "Brief description of the career path" }
  ],
  "recommended_universities": [
    { "id": "university_id", "name": "University Name", "reason": "Why this university is a good fit" }
  ],
  "next_steps": [
    "Step 1 description",
    "Step 2 description"
  ],
  "summary": "A brief 2-3 sentence summary of your recommendations"
}

Available universities for recommendation (use these IDs and names):
%s

Only recommend universities from the provided list. Match recommendations to the student's interests, preferred countries, and budget.`, list)
}

func userPrompt(p ProfileInput) string {
	return fmt.Sprintf(`Student Profile:
- Education Level: %s
- GPA/Grades: %s
- Interests: %s
- Skills: %s
- Preferred Countries: %s
- Budget Range: %s

Please analyze this profile and provide personalized recommendations.`,
		orDefault(p.EducationLevel, "Not specified"),
		orDefault(p.GPA, "Not specified"),
		orDefault(strings.Join(p.Interests, ", "), "Not specified"),
		orDefault(strings.Join(p.Skills, ", "), "Not specified"),
		orDefault(strings.Join(p.PreferredCountries, ", "), "Any"),
		orDefault(p.BudgetRange, "Not specified"),
	)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
