package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectModel_Primary(t *testing.T) {
	fake := &fakeModels{}

	handle, err := selectModel(context.Background(), fake, defaultModels, testLogger())

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", handle.Name)
	assert.Equal(t, []string{"gemini-2.0-flash"}, fake.gets)
}

func TestSelectModel_Fallback(t *testing.T) {
	fake := &fakeModels{getErrs: map[string]error{
		"gemini-2.0-flash": errors.New("model not found"),
	}}

	handle, err := selectModel(context.Background(), fake, defaultModels, testLogger())

	require.NoError(t, err)
	assert.Equal(t, "gemini-pro", handle.Name)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-pro"}, fake.gets)
}

func TestSelectModel_AllFail(t *testing.T) {
	cause := errors.New("permission denied")
	fake := &fakeModels{getErrs: map[string]error{
		"gemini-2.0-flash": errors.New("model not found"),
		"gemini-pro":       cause,
	}}

	_, err := selectModel(context.Background(), fake, defaultModels, testLogger())

	require.Error(t, err)
	var initErr *ModelInitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "gemini-pro", initErr.Model)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Could not load 'gemini-pro' either. Error: permission denied", err.Error())

	// Each candidate is tried exactly once.
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-pro"}, fake.gets)
}

func TestSelectModel_NoCandidates(t *testing.T) {
	_, err := selectModel(context.Background(), &fakeModels{}, nil, testLogger())

	var initErr *ModelInitError
	assert.ErrorAs(t, err, &initErr)
}

func TestSelectModel_HandleGenerates(t *testing.T) {
	fake := &fakeModels{resp: textResponse("A day on Venus is longer than its year.")}

	handle, err := selectModel(context.Background(), fake, defaultModels, testLogger())
	require.NoError(t, err)

	fact := NewFactGenerator(handle, testLogger()).Generate(context.Background(), "space")
	assert.Equal(t, FactOK, fact.Kind)
	assert.Equal(t, "gemini-2.0-flash", fake.lastModel)
}
