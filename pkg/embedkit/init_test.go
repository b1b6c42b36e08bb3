package embedkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/config"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/platform/cannoli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRegistersWizardConfig(t *testing.T) {
	require.NoError(t, Init(Options{IsCannoli: true}))
	assert.Equal(t, cannoli.WizardConfig(), Config().Wizard())

	path := filepath.Join(t.TempDir(), "wizard.toml")
	require.NoError(t, os.WriteFile(path, []byte("title_color = \"#112233\"\n"), 0o644))
	require.NoError(t, Init(Options{WizardConfigPath: path}))
	assert.Equal(t, config.HexToColor(0x112233), Config().Wizard().TitleColor)
	assert.Equal(t, "Wizard", Config().Wizard().Catalog)

	err := Init(Options{WizardConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	assert.True(t, IsConfigurationError(err))

	require.NoError(t, Init(Options{}))
	assert.Equal(t, config.Default(), Config().Wizard())
}
