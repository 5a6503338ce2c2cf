package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/tool"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, tool.DefaultConfig(), cfg.ToolConfig())
	assert.Equal(t, tool.DefaultGridSize, cfg.GridHelper().Step())
}

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
grid:
  size: 25
  snap_radius: 10
drag:
  line_mode: free
  warp_cursor: false
bus_aliases:
  - name: MEM
    members: [A0, A1, D0]
`))
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Grid.Size)
	assert.True(t, cfg.Drag.AutoRotateLabels, "missing keys keep defaults")

	tc := cfg.ToolConfig()
	assert.Equal(t, tool.LineModeFree, tc.LineMode)
	assert.False(t, tc.WarpCursor)

	g := cfg.GridHelper()
	assert.Equal(t, 25*IUPerMil, g.Size)
	assert.Equal(t, 10*IUPerMil, g.SnapRadius)

	s := sch.NewSchematic(nil)
	s.AddBusAlias(sch.NewBusAlias("MEM", "X"))
	assert.Equal(t, 0, cfg.ApplyAliases(s))
	assert.Equal(t, []string{"X"}, s.BusAlias("MEM").Members)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative grid", "grid: {size: -5}"},
		{"negative radius", "grid: {snap_radius: -1}"},
		{"line mode", "drag: {line_mode: diagonal}"},
		{"unnamed alias", "bus_aliases: [{members: [A]}]"},
		{"empty alias", "bus_aliases: [{name: X}]"},
		{"duplicate alias", "bus_aliases: [{name: X, members: [A]}, {name: X, members: [B]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otsch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bus_aliases: [{name: I2C, members: [SDA, SCL]}]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	s := sch.NewSchematic(nil)
	assert.Equal(t, 1, cfg.ApplyAliases(s))
	require.NotNil(t, s.BusAlias("I2C"))
	assert.True(t, s.BusAlias("I2C").Contains("SCL"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grid: [\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
