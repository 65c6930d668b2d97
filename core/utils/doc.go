// Package utils provides common utility functions for the city-comparison module.
// It includes helpers for coercing the loosely typed values that CSV and JSON
// sources produce into strings and numbers.
package utils
