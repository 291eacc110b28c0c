package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"asset-forecast/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-1.5-flash"
	advisorMaxTokens   = 300
)

const advisorSystemPrompt = "You are a financial planning assistant for a field-service company that maintains HVAC and building equipment. You explain cost forecasts to operations managers in plain language, with concrete figures and no speculation beyond the data provided."

// AdvisorOptions selects the language model backing the advisor.
type AdvisorOptions struct {
	Provider string
	APIKey   string
	Model    string
	APIURL   string // OpenAI-compatible endpoint override
	Timeout  time.Duration
}

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AdvisorService writes a short narrative for a budget prediction. Without a
// configured provider, or when the provider fails, it falls back to a
// deterministic summary of the prediction factors.
type AdvisorService struct {
	llm     completer
	enabled bool
}

func NewAdvisorService(opts AdvisorOptions) *AdvisorService {
	if opts.APIKey == "" {
		return &AdvisorService{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	var llm completer
	switch opts.Provider {
	case ProviderGemini:
		model := opts.Model
		if model == "" {
			model = defaultGeminiModel
		}
		llm = &geminiCompleter{apiKey: opts.APIKey, model: model}
	case ProviderOpenAI, "":
		apiURL := opts.APIURL
		if apiURL == "" {
			apiURL = defaultOpenAIURL
		}
		model := opts.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		llm = &openAICompleter{
			apiKey:     opts.APIKey,
			apiURL:     apiURL,
			model:      model,
			httpClient: &http.Client{Timeout: opts.Timeout},
		}
	default:
		log.Printf("Warning: unknown advisor provider %q, using fallback explanations", opts.Provider)
		return &AdvisorService{}
	}

	return &AdvisorService{llm: llm, enabled: true}
}

func (s *AdvisorService) Enabled() bool {
	return s != nil && s.enabled
}

// ExplainBudget returns a narrative for prediction.
func (s *AdvisorService) ExplainBudget(ctx context.Context, prediction domain.BudgetPrediction) string {
	if !s.Enabled() {
		return fallbackBudgetExplanation(prediction)
	}

	prompt := fmt.Sprintf(`Explain this cost forecast to an operations manager.

FORECAST:
- Projected costs next quarter: $%.0f
- Projected costs next twelve months: $%.0f

DRIVERS (most significant first):
%s
INSTRUCTIONS:
1. Summarise what the two figures mean for planning.
2. Mention each driver and how it affects the forecast.
3. Keep it to 3-4 sentences.`,
		prediction.NextQuarter, prediction.NextYear, formatFactors(prediction.Factors))

	explanation, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		log.Printf("Error calling advisor for budget explanation: %v", err)
		return fallbackBudgetExplanation(prediction)
	}
	return strings.TrimSpace(explanation)
}

func formatFactors(factors []string) string {
	var b strings.Builder
	for _, f := range factors {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	return b.String()
}

func fallbackBudgetExplanation(prediction domain.BudgetPrediction) string {
	text := fmt.Sprintf("Costs are projected at $%.0f for the next quarter and $%.0f over the next twelve months.",
		prediction.NextQuarter, prediction.NextYear)
	if len(prediction.Factors) > 0 {
		text += " Main driver: " + strings.ToLower(prediction.Factors[0]) + "."
	}
	if len(prediction.Factors) > 1 {
		rest := make([]string, 0, len(prediction.Factors)-1)
		for _, f := range prediction.Factors[1:] {
			rest = append(rest, strings.ToLower(f))
		}
		text += " Also considered: " + strings.Join(rest, "; ") + "."
	}
	return text
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openAICompleter struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

func (c *openAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: advisorMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return chat.Choices[0].Message.Content, nil
}

type geminiCompleter struct {
	apiKey string
	model  string
}

func (c *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetMaxOutputTokens(advisorMaxTokens)
	model.SystemInstruction = genai.NewUserContent(genai.Text(advisorSystemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return b.String(), nil
}
