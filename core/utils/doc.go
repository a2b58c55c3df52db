// Package utils provides common utility functions for the stream-manager application.
// It includes helper functions for type conversion of raw database values and other
// shared logic that doesn't fit into domain-specific packages.
package utils
