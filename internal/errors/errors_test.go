package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		expected string
	}{
		{
			name:     "error without cause",
			err:      ConfigurationError("resource path is not absolute").Build(),
			expected: "[config:error] resource path is not absolute",
		},
		{
			name:     "error with cause",
			err:      WrapError(fmt.Errorf("permission denied"), CategoryFileSystem, "write output").Fatal().Build(),
			expected: "[filesystem:fatal] write output: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestClassifiedError_WrappedChain(t *testing.T) {
	base := ConfigurationError("resource path is not absolute").
		WithContext("path", "rel/img.png").
		Build()
	wrapped := fmt.Errorf("rewrite line 3: %w", base)

	assert.True(t, IsConfiguration(wrapped))
	assert.Equal(t, CategoryConfig, GetCategory(wrapped))
	assert.True(t, stderrors.Is(wrapped, ConfigurationError("resource path is not absolute").Build()))

	classified, ok := AsClassified(wrapped)
	require.True(t, ok)
	path, ok := classified.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "rel/img.png", path)
}

func TestGetCategory_Unclassified(t *testing.T) {
	assert.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
	assert.False(t, IsConfiguration(fmt.Errorf("plain")))
}

func TestWithContext_DoesNotMutateReceiver(t *testing.T) {
	orig := DocsError("decode header").Build()
	withCtx := orig.WithContext("line", 2)

	_, exists := orig.Context().Get("line")
	assert.False(t, exists)
	v, exists := withCtx.Context().Get("line")
	require.True(t, exists)
	assert.Equal(t, 2, v)
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 1, a.ExitCodeFor(fmt.Errorf("plain")))
	assert.Equal(t, 7, a.ExitCodeFor(ConfigurationError("x").Build()))
	assert.Equal(t, 2, a.ExitCodeFor(ValidationError("x").Build()))
	assert.Equal(t, 3, a.ExitCodeFor(NotFoundError("x").Build()))
	assert.Equal(t, 11, a.ExitCodeFor(FileSystemError("x").Build()))
	assert.Equal(t, 11, a.ExitCodeFor(AssetError("x").Build()))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	code := -1
	a := NewCLIErrorAdapter(false, nil)
	a.out = &out
	a.exit = func(c int) { code = c }

	a.HandleError(NotFoundError("vault not found").WithContext("path", "/nope").Build())

	assert.Equal(t, 3, code)
	assert.Equal(t, "Error: vault not found (/nope)\n", out.String())
}
