package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomError_WrapKeepsIdentity(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("search: %w", ErrUpstreamError.Wrap(cause))

	assert.True(t, errors.Is(err, ErrUpstreamError))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrAIServiceError))
	assert.Equal(t, "recipe api error: dial tcp: refused", ErrUpstreamError.Wrap(cause).Error())
}

func TestToResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		debug      bool
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"predefined", ErrRecipeNotFound, false, http.StatusNotFound, "RECIPE_NOT_FOUND", ""},
		{"wrapped with details", ErrUpstreamError.Wrap(errors.New("boom")), true, http.StatusBadGateway, "UPSTREAM_ERROR", "boom"},
		{"details hidden", ErrUpstreamError.Wrap(errors.New("boom")), false, http.StatusBadGateway, "UPSTREAM_ERROR", ""},
		{"validation", NewValidationError("name is required"), false, http.StatusBadRequest, ErrCodeInvalidRequest, ""},
		{"unknown", errors.New("disk full"), false, http.StatusInternalServerError, ErrCodeInternalError, ""},
		{"unknown debug", errors.New("disk full"), true, http.StatusInternalServerError, ErrCodeInternalError, "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := ToResponse(tt.err, tt.debug)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantDetail, resp.Details)
		})
	}

	_, resp := ToResponse(NewValidationError("name is required"), false)
	assert.Equal(t, "name is required", resp.Message)
}

func TestJSONHelpers(t *testing.T) {
	content := "Here you go:\n```json\n{title: \"Soup\", \"servings\": 2}\n```"
	raw := ExtractJSONObject(content)
	assert.Equal(t, `{title: "Soup", "servings": 2}`, raw)

	var v struct {
		Title    string `json:"title"`
		Servings int    `json:"servings"`
	}
	require.Error(t, ParseJSON(raw, &v))
	require.NoError(t, ParseJSON(QuoteJSONKeys(raw), &v))
	assert.Equal(t, "Soup", v.Title)
	assert.Equal(t, 2, v.Servings)

	assert.Error(t, ParseJSONBytes([]byte(`{"title":"a"} {"title":"b"}`), &v))
	assert.Equal(t, "no braces", ExtractJSONObject("  no braces "))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "Green Bell Pepper", TitleCase("green  bell pepper"))
	assert.Equal(t, "a b c", CollapseSpaces("  a \t b\n c "))
	assert.Equal(t, 1.24, RoundMoney(1.235000001))
	assert.True(t, IsUUID(GenerateUUID()))
	assert.False(t, IsUUID("not-a-uuid"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", ParseLevel("DEBUG").String())
	assert.Equal(t, "warn", ParseLevel("warning").String())
	assert.Equal(t, "info", ParseLevel("verbose").String())
}

func TestFilterFieldsDropsCredentials(t *testing.T) {
	fields := filterFields([]zap.Field{
		zap.String("openrouter_api_key", "sk-123"),
		zap.String("Authorization", "Bearer x"),
		zap.String("path", "/api/v1/recipes"),
	})
	require.Len(t, fields, 1)
	assert.Equal(t, "path", fields[0].Key)
}
