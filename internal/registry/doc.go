package registry

// Package registry maintains the authoritative mapping from widget id to
// widget definition and notifies observers of changes. Instances are
// constructor-injected by the composition root; there is no package-level
// singleton.
