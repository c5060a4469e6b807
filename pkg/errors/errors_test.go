package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := Storage("failed to read doctor directory", stderrors.New("permission denied"))
	wrapped := fmt.Errorf("lookup failed: %w", base)

	assert.Equal(t, KindStorage, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindStorage))
	assert.False(t, IsKind(wrapped, KindNotFound))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(stderrors.New("boom")))
}

func TestMessageOf(t *testing.T) {
	err := NotFoundf("No doctors found for specialization '%s'.", "unicornist")
	wrapped := fmt.Errorf("tool failed: %w", err)

	assert.Equal(t, "No doctors found for specialization 'unicornist'.", MessageOf(wrapped))
	assert.Equal(t, "plain", MessageOf(stderrors.New("plain")))
}

func TestErrorIncludesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Storage("failed to write doctor directory", cause)

	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}
