package shell

// Package shell is the desktop implementation of the host-shell bridge.
// It backs window, theme, file, notification and app metadata access with
// Fyne and the operating system. On the web there is no shell at all; a
// nil bridge is the normal state there, so nothing in this package is
// required for the dashboard to function.
