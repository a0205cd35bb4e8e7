package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "filedesk/ws/file", objectKey("", "ws/file"))
	assert.Equal(t, "uploads/ws/file", objectKey("uploads/", "ws/file"))
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(nil)
	require.Error(t, err)

	_, err = NewClient(&Config{AccessKeyID: "key", SecretAccessKey: "secret"})
	require.ErrorContains(t, err, "Bucket is required")
}
