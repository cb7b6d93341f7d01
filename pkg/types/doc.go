// Package types provides shared type definitions used across the agentsgen packages.
//
// Detection produces these values and the tool configuration persists them, so
// they live here to keep pkg/detect and pkg/config free of an import cycle.
//
//nolint:revive // Package name 'types' is appropriate for common type definitions
package types
