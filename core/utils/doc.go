// Package utils provides loose value conversion for query parameters,
// form values and flags. Conversions never fail: unparsable input yields
// the zero value.
package utils
