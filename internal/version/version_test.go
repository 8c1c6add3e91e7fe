package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	// "dev" unless set via ldflags.
	assert.NotEmpty(t, Version)
}
