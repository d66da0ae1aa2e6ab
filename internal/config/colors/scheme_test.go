package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPreset(t *testing.T) {
	assert.Equal(t, "default", GetPreset("").Preset)
	assert.Equal(t, "monochrome", GetPreset("monochrome").Preset)
	assert.Equal(t, "wave", GetPreset("wave").Preset)
	assert.Equal(t, "default", GetPreset("solarized").Preset, "unknown presets fall back to default")
}

// TestApplyDefaults_KeepsOverrides ensures custom values survive while
// missing ones come from the preset.
func TestApplyDefaults_KeepsOverrides(t *testing.T) {
	c := ColorScheme{Preset: "wave", Accent: "#FF0000"}
	c.ApplyDefaults()

	assert.Equal(t, "#FF0000", c.Accent)
	assert.Equal(t, Wave().DropHighlight, c.DropHighlight)
	assert.Equal(t, Wave().Normal, c.Normal)
}

func TestMergeFrom(t *testing.T) {
	c := *Default()
	c.MergeFrom(ColorScheme{DragBorder: "#00FF00"})

	assert.Equal(t, "#00FF00", c.DragBorder)
	assert.Equal(t, Default().Accent, c.Accent)
	assert.Equal(t, "default", c.Preset)
}

// TestMergeFrom_PresetSwitch ensures a theme file naming another preset
// rebases every unspecified color on that preset.
func TestMergeFrom_PresetSwitch(t *testing.T) {
	c := *Default()
	c.MergeFrom(ColorScheme{Preset: "monochrome", Accent: "#123456"})

	assert.Equal(t, "monochrome", c.Preset)
	assert.Equal(t, "#123456", c.Accent)
	assert.Equal(t, Monochrome().CardBorder, c.CardBorder)
}
