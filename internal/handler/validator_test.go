package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ResourceType(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		rt      string
		wantErr bool
	}{
		{"simple", "kelp", false},
		{"underscore", "sea_glass", false},
		{"mixed case is normalized", "Kelp", false},
		{"surrounding whitespace is normalized", "  rock ", false},
		{"empty", "", true},
		{"leading digit", "9kelp", true},
		{"punctuation", "kelp!", true},
		{"inner space", "sea glass", true},
		{"too long", strings.Repeat("k", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(CreateNodeRequest{ResourceType: tt.rt})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_HarvestRequest(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(HarvestRequest{ActorID: "diver-1"}))
	assert.NoError(t, v.ValidateStruct(HarvestRequest{ActorID: "diver-1", Tool: &ToolRequest{Kind: "knife"}}))
	assert.Error(t, v.ValidateStruct(HarvestRequest{ActorID: "diver-1", Tool: &ToolRequest{}}), "tool kind required when a tool is given")
	assert.Error(t, v.ValidateStruct(HarvestRequest{ActorID: strings.Repeat("a", 101)}))
	assert.Error(t, v.ValidateStruct(HarvestRequest{ActorID: "tab\there"}))
}

func TestValidator_StaminaRequest(t *testing.T) {
	v := GetValidator()
	pct := func(f float64) *float64 { return &f }

	assert.NoError(t, v.ValidateStruct(SetStaminaRequest{Percent: pct(0)}))
	assert.NoError(t, v.ValidateStruct(SetStaminaRequest{Percent: pct(1)}))
	assert.Error(t, v.ValidateStruct(SetStaminaRequest{}))
	assert.Error(t, v.ValidateStruct(SetStaminaRequest{Percent: pct(1.5)}))
	assert.Error(t, v.ValidateStruct(SetStaminaRequest{Percent: pct(-0.1)}))
}

func TestFormatValidationError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("non validation error", func(t *testing.T) {
		errs := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", errs["error"])
	})

	t.Run("field messages use json names", func(t *testing.T) {
		err := GetValidator().ValidateStruct(CreateNodeRequest{ResourceType: "kelp!", EnhancementLevel: 101})
		require.Error(t, err)

		errs := FormatValidationError(err)
		assert.Equal(t, map[string]string{
			"resource_type":     "Must be a lowercase resource name like kelp or sea_glass",
			"enhancement_level": "Must be at most 100",
		}, errs)
	})

	t.Run("nested fields keep their path", func(t *testing.T) {
		err := GetValidator().ValidateStruct(HarvestRequest{ActorID: "diver-1", Tool: &ToolRequest{}})
		require.Error(t, err)

		assert.Equal(t, "This field is required", FormatValidationError(err)["tool.kind"])
	})

	t.Run("bounds", func(t *testing.T) {
		pct := 1.5
		err := GetValidator().ValidateStruct(SetStaminaRequest{Percent: &pct})
		require.Error(t, err)

		assert.Equal(t, "Must be at most 1", FormatValidationError(err)["percent"])
	})
}
