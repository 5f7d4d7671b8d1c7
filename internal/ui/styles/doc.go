// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colour palette and theme for the devconsole
overlay.

All colours are Lip Gloss AdaptiveColor values so they follow the
terminal's light or dark background.

# Theme

	theme := styles.NewTheme(styles.ThemeOptions{NoColor: cfg.UI.NoColor})
	line := theme.LogLineStyle(text).Render(text)

A theme built with NoColor renders through an ASCII colour profile, so
output contains no escape sequences. Tests rely on this.

# Accessibility

Coloured states are paired with text indicators ([OK], [X], [!], [i]) so
they remain readable without colour.
*/
package styles
