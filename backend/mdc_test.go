package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipp01105/streamlog/core"
)

func TestContext(t *testing.T) {
	t.Cleanup(ClearContext)

	SetContext(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, []core.Field{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, Context())
	assert.Len(t, contextFields(), 2)

	// SetContext replaces rather than merges.
	SetContext(map[string]string{"c": "3"})
	assert.Equal(t, []core.Field{{Key: "c", Value: "3"}}, Context())

	got := Context()
	got[0].Value = "changed"
	assert.Equal(t, "3", Context()[0].Value)

	ClearContext()
	assert.Empty(t, Context())
	assert.Empty(t, contextFields())
}
