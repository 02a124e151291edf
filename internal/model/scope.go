package model

// Scope carries per-run identity through use case calls.
type Scope struct {
	AccountID string
}
