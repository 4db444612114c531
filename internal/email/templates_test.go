package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResetCodeTemplate(t *testing.T) {
	t.Parallel()

	html, err := renderTemplate("reset_code", map[string]interface{}{
		"Code":         "042137",
		"ValidMinutes": 10,
	})

	require.NoError(t, err)
	assert.Contains(t, html, "042137")
	assert.Contains(t, html, "10 minutes")
}

func TestRenderEscapesUserInput(t *testing.T) {
	t.Parallel()

	html, err := renderTemplate("welcome", map[string]interface{}{
		"Name": `<script>alert("x")</script>`,
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	_, err := renderTemplate("inexistant", nil)
	assert.Error(t, err)
}
