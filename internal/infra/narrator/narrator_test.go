package narrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"numerology_fortune_bot/internal/domain/fortune"
)

type fakeModels struct {
	text     string
	err      error
	model    string
	prompt   string
	deadline bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(f.text, genai.RoleModel)},
		},
	}, nil
}

var reading = fortune.Reading{
	Category: fortune.CategoryRelationships,
	Number:   11,
	Entry:    fortune.Entry{Mark: fortune.MarkSun},
}

func TestKeywords_Narrate(t *testing.T) {
	text, err := Keywords{}.Narrate(context.Background(), reading)
	require.NoError(t, err)
	assert.Equal(t, "Number 11. Keywords: intuition, revelation, idealism, inspiration.", text)

	text, err = Keywords{}.Narrate(context.Background(), fortune.Reading{Number: 0})
	require.NoError(t, err)
	assert.Equal(t, "Number 0.", text)
}

func TestGemini_Narrate(t *testing.T) {
	models := &fakeModels{text: "  A bright day awaits.  "}
	g := newGemini(models, "gemini-test", time.Second)

	text, err := g.Narrate(context.Background(), reading)
	require.NoError(t, err)

	assert.Equal(t, "A bright day awaits.", text)
	assert.Equal(t, "gemini-test", models.model)
	assert.True(t, models.deadline)
	assert.Contains(t, models.prompt, "Relationships")
	assert.Contains(t, models.prompt, "Fortune number: 11")
	assert.Contains(t, models.prompt, "intuition")
}

func TestGemini_Errors(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := newGemini(&fakeModels{err: boom}, "m", 0).Narrate(context.Background(), reading)
	assert.ErrorIs(t, err, boom)

	_, err = newGemini(&fakeModels{text: "   "}, "m", 0).Narrate(context.Background(), reading)
	assert.ErrorIs(t, err, ErrEmptyGeneration)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "m", time.Second)
	assert.Error(t, err)
}
