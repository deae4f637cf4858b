package bot

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCappedReadCloserWithinLimit(t *testing.T) {
	r := &cappedReadCloser{r: io.NopCloser(strings.NewReader("hello")), remaining: 10}

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCappedReadCloserAbortsPastLimit(t *testing.T) {
	r := &cappedReadCloser{r: io.NopCloser(strings.NewReader("hello world")), remaining: 5}

	_, err := io.ReadAll(r)
	assert.ErrorIs(t, err, ErrAttachmentTooLarge)
}
