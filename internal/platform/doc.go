package platform

// Package platform contains host environment integration: capability
// detection over an injected environment descriptor, the optional
// host-shell bridge contract, the process-wide platform context provider
// (theme, capabilities, tenant, registry), and filesystem helpers.
