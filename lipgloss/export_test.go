package lipgloss

// RGBColor exposes rgbColor for external tests.
var RGBColor = rgbColor
