package models

// Provider identifies an allowlist provider adapter instance.
type Provider string
