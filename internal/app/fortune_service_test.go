package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numerology_fortune_bot/internal/domain/fortune"
)

func TestFortuneService_Tell_UsesTable(t *testing.T) {
	log, _ := testLogger()
	narrator := &fakeNarrator{name: "fake", text: "generated"}
	svc := NewFortuneService(fullTable(t), time.UTC, log, narrator)

	res, err := svc.Tell(context.Background(), "abc@example.com", jan15)
	require.NoError(t, err)

	assert.Equal(t, "table inner_3", res.Inner.Text)
	assert.Equal(t, "table environment_1", res.Environment.Text)
	assert.Equal(t, "table relationships_11", res.Relationships.Text)
	assert.Equal(t, "table overall_6", res.Overall.Text)
	assert.Empty(t, narrator.calls)
}

func TestFortuneService_Tell_NarratesMissingText(t *testing.T) {
	tbl, err := fortune.NewTable(map[string]fortune.Entry{"inner_3": {Text: "from table"}})
	require.NoError(t, err)

	log, hook := testLogger()
	failing := &fakeNarrator{name: "gemini", err: errors.New("quota")}
	empty := &fakeNarrator{name: "shy"}
	fallback := &fakeNarrator{name: "keywords", text: "fallback"}
	svc := NewFortuneService(tbl, time.UTC, log, failing, empty, fallback)

	res, err := svc.Tell(context.Background(), "abc@example.com", jan15)
	require.NoError(t, err)

	assert.Equal(t, "from table", res.Inner.Text)
	assert.Equal(t, "fallback", res.Environment.Text)
	assert.Equal(t, "fallback", res.Overall.Text)
	assert.Equal(t, []string{"environment_1", "relationships_11", "overall_6"}, failing.calls)
	assert.Len(t, empty.calls, 3)

	// Narration never changes numbers or marks.
	assert.Equal(t, 11, res.Relationships.Number)
	assert.Equal(t, fortune.MarkSun, res.Relationships.Mark)

	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "gemini", hook.LastEntry().Data["narrator"])
}

func TestFortuneService_Tell_NoNarrators(t *testing.T) {
	log, _ := testLogger()
	svc := NewFortuneService(nil, time.UTC, log)

	res, err := svc.Tell(context.Background(), "abc@example.com", jan15)
	require.NoError(t, err)
	for _, r := range res.Readings() {
		assert.Empty(t, r.Text)
		assert.Equal(t, fortune.MarkFor(r.Number), r.Mark)
	}
}

func TestFortuneService_Tell_InvalidEmail(t *testing.T) {
	log, _ := testLogger()
	svc := NewFortuneService(nil, time.UTC, log)

	_, err := svc.Tell(context.Background(), "nobody", jan15)
	assert.ErrorIs(t, err, fortune.ErrInvalidEmail)
}

func TestFortuneService_Today(t *testing.T) {
	log, _ := testLogger()
	tokyo := time.FixedZone("JST", 9*60*60)
	svc := NewFortuneService(nil, tokyo, log)
	svc.now = func() time.Time { return time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC) }

	today := svc.Today()
	assert.Equal(t, 16, today.Day())
	assert.Equal(t, tokyo, today.Location())
	assert.Zero(t, today.Hour())
}

func TestRenderFortune(t *testing.T) {
	log, _ := testLogger()
	tbl, err := fortune.NewTable(map[string]fortune.Entry{"inner_3": {Text: "Say <hello> & smile"}})
	require.NoError(t, err)
	svc := NewFortuneService(tbl, time.UTC, log)

	res, err := svc.Tell(context.Background(), "abc@example.com", jan15)
	require.NoError(t, err)

	msg := RenderFortune(res, jan15)
	assert.Contains(t, msg, "Monday, 15 January 2024")
	assert.Contains(t, msg, "🌸 <b>Inner self</b> · 3")
	assert.Contains(t, msg, "Say &lt;hello&gt; &amp; smile")
	assert.Contains(t, msg, "☀️ <b>Environment</b> · 1")
	assert.Contains(t, msg, "☀️ <b>Relationships</b> · 11")
	assert.Contains(t, msg, "🌸 <b>Overall</b> · 6")

	assert.Less(t, strings.Index(msg, "Inner self"), strings.Index(msg, "Environment"))
	assert.Less(t, strings.Index(msg, "Relationships"), strings.Index(msg, "Overall"))
}
