package narrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"numerology_fortune_bot/internal/domain/fortune"
)

var ErrEmptyGeneration = errors.New("model returned no text")

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini writes fortune texts with a Gemini model. It is only consulted
// for readings the fortune table has no text for.
type Gemini struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGemini(client.Models, model, timeout), nil
}

func newGemini(models contentGenerator, model string, timeout time.Duration) *Gemini {
	return &Gemini{models: models, model: model, timeout: timeout}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Narrate(ctx context.Context, r fortune.Reading) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temperature := float32(0.9)
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(r)), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}

// Prompt is the instruction sent to the model for one reading.
func Prompt(r fortune.Reading) string {
	var b strings.Builder
	b.WriteString("You are a professional fortune teller and a poet with a deep knowledge of numerology. ")
	b.WriteString("Write today's fortune for a messaging bot whose readers want a small, gentle lift at the start of their day. ")
	b.WriteString("Never write anything that could make the reader anxious or sad.\n\n")
	fmt.Fprintf(&b, "* Fortune area: %s\n", r.Category.Title())
	fmt.Fprintf(&b, "* Fortune number: %d\n", r.Number)
	fmt.Fprintf(&b, "* Keywords of the number: %s\n", strings.Join(fortune.Keywords(r.Number), ", "))
	fmt.Fprintf(&b, "* Today's mark: %s %s\n\n", r.Mark.Emoji(), r.Mark)
	b.WriteString("Write about 60 words in a warm, polite tone. Let the mark set the mood: sun is energetic, bloom is soft, cloud is calm. ")
	b.WriteString("You do not need to use every keyword. Suggest rather than assert (\"it might be\", \"why not try\"). ")
	b.WriteString("Reply with the fortune text only, without any introduction or closing remark.")
	return b.String()
}
