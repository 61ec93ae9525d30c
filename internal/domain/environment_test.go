package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Environment
		wantErr  bool
	}{
		{name: "preview", input: "preview", expected: EnvironmentPreview},
		{name: "release", input: "release", expected: EnvironmentRelease},
		{name: "unknown value", input: "staging", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
		{name: "wrong case", input: "Release", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, env)
		})
	}
}

func TestEnvironmentSlotColumn(t *testing.T) {
	column, err := EnvironmentPreview.SlotColumn()
	assert.NoError(t, err)
	assert.Equal(t, "preview_version_id", column)

	column, err = EnvironmentRelease.SlotColumn()
	assert.NoError(t, err)
	assert.Equal(t, "release_version_id", column)

	_, err = Environment("staging").SlotColumn()
	assert.Error(t, err)
}

func TestModelTypeValid(t *testing.T) {
	assert.True(t, ModelTypeText2Text.Valid())
	assert.True(t, ModelTypeText2Image.Valid())
	assert.False(t, ModelType("TEXT2SPEECH").Valid())
	assert.False(t, ModelType("").Valid())
}
