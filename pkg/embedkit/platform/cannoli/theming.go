// Package cannoli provides wizard styling for the Cannoli custom firmware.
// Cannoli is a community-developed CFW for retro handheld gaming devices.
package cannoli

import (
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/config"
)

// WizardConfig returns the wizard configuration using Cannoli's default colors.
func WizardConfig() config.WizardUI {
	ui := config.Default()
	ui.BackgroundColor = config.HexToColor(0xFFFFFF)
	ui.TitleColor = config.HexToColor(0x008080)
	ui.MessageColor = config.HexToColor(0x000000)
	ui.NextButtonTitleColor = config.HexToColor(0x008080)
	return ui
}
