package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/redguard/internal/core/styles"
)

func TestNewHelp_UsesTheme(t *testing.T) {
	h := newHelp()

	assert.Equal(t, styles.HelpStyle.GetForeground(), h.Styles.ShortDesc.GetForeground())
	assert.Equal(t, styles.HelpStyle.GetForeground(), h.Styles.ShortSeparator.GetForeground())
	assert.Equal(t, styles.HelpKeyStyle.GetForeground(), h.Styles.ShortKey.GetForeground())
	assert.Equal(t, styles.HelpKeyStyle.GetForeground(), h.Styles.FullKey.GetForeground())
}
