package event

// Package event provides a minimal typed broadcast feed used for loosely
// coupled signals such as widget-originated theme-change requests and
// storage change notifications. Delivery order is subscription order and
// every publish sees a snapshot of the subscriber set.
