package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Model candidates for the Gemini API, tried in order
var defaultModels = []string{"gemini-2.0-flash", "gemini-pro"}

// modelService is the subset of genai.Models used by the app.
type modelService interface {
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ModelHandle is a generative model bound to one identifier. It is
// created once at startup and shared read-only afterwards.
type ModelHandle struct {
	Name   string
	models modelService
}

// ModelInitError reports that no candidate model could be loaded. Model
// and Err describe the last attempt.
type ModelInitError struct {
	Model string
	Err   error
}

func (e *ModelInitError) Error() string {
	return fmt.Sprintf("Could not load '%s' either. Error: %v", e.Model, e.Err)
}

func (e *ModelInitError) Unwrap() error {
	return e.Err
}

// OpenModel creates a Gemini client and binds it to the first usable
// model among candidates.
func OpenModel(ctx context.Context, apiKey string, candidates []string, log *logrus.Entry) (*ModelHandle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return selectModel(ctx, client.Models, candidates, log)
}

// selectModel tries each candidate exactly once, in order.
func selectModel(ctx context.Context, models modelService, candidates []string, log *logrus.Entry) (*ModelHandle, error) {
	if len(candidates) == 0 {
		return nil, &ModelInitError{Err: errors.New("no model candidates configured")}
	}

	var lastErr error
	for _, name := range candidates {
		if _, err := models.Get(ctx, name, nil); err != nil {
			log.WithError(err).WithField("model", name).Warn("model unavailable")
			lastErr = err
			continue
		}
		log.WithField("model", name).Info("model loaded")
		return &ModelHandle{Name: name, models: models}, nil
	}

	return nil, &ModelInitError{Model: candidates[len(candidates)-1], Err: lastErr}
}
