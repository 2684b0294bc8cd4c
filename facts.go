package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const (
	// Generation settings, identical for every call
	factTemperature     = 0.9
	factCandidateCount  = 1
	factMaxOutputTokens = 80

	// Shorter results are discarded
	minFactLength = 15
)

// Fixed user-facing texts
const (
	msgBlocked  = "I'm sorry, I cannot generate a fact for that topic due to safety guidelines. Please try a different topic."
	msgFailed   = "Failed to generate fact. Please check your API key, internet connection, or try a different topic."
	msgEmpty    = "The AI generated an empty or unreadable response. Please try again."
	msgTooShort = "The AI couldn't generate a good fact for that. Please try a different topic or click again."
	msgNoTopic  = "Please enter a topic to generate a fact!"
)

// undesiredPrefixes are stripped from the start of a fact. Order matters:
// only the first match is removed.
var undesiredPrefixes = []string{
	"here's a fun fact about",
	"a fun fact about",
	"did you know that",
	"fact:",
	"fun fact:",
	"the fun fact is",
	"here's an interesting fact about",
	"an interesting fact about",
}

// FactKind tells callers how a generation ended.
type FactKind int

const (
	FactOK FactKind = iota
	FactBlocked
	FactFailed
	FactEmpty
	FactTooShort
)

func (k FactKind) String() string {
	switch k {
	case FactOK:
		return "ok"
	case FactBlocked:
		return "blocked"
	case FactFailed:
		return "failed"
	case FactEmpty:
		return "empty"
	case FactTooShort:
		return "too_short"
	default:
		return fmt.Sprintf("FactKind(%d)", int(k))
	}
}

// Fact is the outcome of one generation. Text is always suitable for
// display; Err is only set for FactFailed.
type Fact struct {
	Kind FactKind
	Text string
	Err  error
}

// ErrorBanner returns the diagnostic line for failed generations.
func (f Fact) ErrorBanner() string {
	if f.Kind != FactFailed || f.Err == nil {
		return ""
	}
	return fmt.Sprintf("An error occurred while generating the fact: %v", f.Err)
}

// FactSource produces facts for topics. It never fails; failures are
// reported through the Fact kind.
type FactSource interface {
	Generate(ctx context.Context, topic string) Fact
}

// FactGenerator turns topics into facts using a loaded model.
type FactGenerator struct {
	model  *ModelHandle
	config *genai.GenerateContentConfig
	log    *logrus.Entry
}

// NewFactGenerator creates a generator bound to model.
func NewFactGenerator(model *ModelHandle, log *logrus.Entry) *FactGenerator {
	return &FactGenerator{
		model:  model,
		config: buildFactConfig(),
		log:    log,
	}
}

// ModelName returns the identifier of the bound model.
func (g *FactGenerator) ModelName() string {
	return g.model.Name
}

// Generate asks the model for a fact about topic and cleans the answer.
func (g *FactGenerator) Generate(ctx context.Context, topic string) Fact {
	start := time.Now()
	fact := g.generate(ctx, topic)

	entry := g.log.WithFields(logrus.Fields{
		"topic":    topic,
		"model":    g.model.Name,
		"kind":     fact.Kind.String(),
		"duration": time.Since(start).String(),
	})
	if fact.Err != nil {
		entry.WithError(fact.Err).Error("fact generation failed")
	} else {
		entry.Info("fact generated")
	}
	return fact
}

func (g *FactGenerator) generate(ctx context.Context, topic string) Fact {
	resp, err := g.model.models.GenerateContent(ctx, g.model.Name, genai.Text(buildFactPrompt(topic)), g.config)
	if err != nil {
		return Fact{Kind: FactFailed, Text: msgFailed, Err: err}
	}

	if isBlocked(resp) {
		return Fact{Kind: FactBlocked, Text: msgBlocked}
	}

	text, ok := extractFactText(resp)
	if !ok {
		return Fact{Kind: FactEmpty, Text: msgEmpty}
	}

	return cleanFact(text)
}

// buildFactPrompt creates the prompt for a topic.
func buildFactPrompt(topic string) string {
	return fmt.Sprintf("Generate a single, interesting, surprising, and verifiable fun fact about %s. Ensure the fact is concise and directly answers the request. Do not include any introductory phrases like 'Here's a fact:' or 'Did you know?' or concluding remarks. Just the fact itself.", topic)
}

// buildFactConfig creates the configuration shared by all calls.
func buildFactConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(factTemperature)),
		CandidateCount:  factCandidateCount,
		MaxOutputTokens: factMaxOutputTokens,
	}
}

// isBlocked reports a provider-side safety rejection.
func isBlocked(resp *genai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return true
	}
	return len(resp.Candidates) == 1 && resp.Candidates[0] != nil &&
		resp.Candidates[0].FinishReason == genai.FinishReasonSafety
}

// extractFactText prefers the response's text accessor and falls back to
// the first part of the first candidate.
func extractFactText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", false
	}
	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text, true
	}

	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0] == nil {
		return "", false
	}
	text := strings.TrimSpace(parts[0].Text)
	return text, text != ""
}

// cleanFact strips a boilerplate prefix and applies the length policy.
func cleanFact(text string) Fact {
	text = stripUndesiredPrefix(text)
	if utf8.RuneCountInString(text) < minFactLength {
		return Fact{Kind: FactTooShort, Text: msgTooShort}
	}
	return Fact{Kind: FactOK, Text: text}
}

// stripUndesiredPrefix removes the first matching prefix, case-insensitively,
// along with a following colon and surrounding whitespace.
func stripUndesiredPrefix(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range undesiredPrefixes {
		if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
			continue
		}
		text = strings.TrimSpace(text[len(prefix):])
		if rest, found := strings.CutPrefix(text, ":"); found {
			text = strings.TrimSpace(rest)
		}
		return text
	}
	return text
}
