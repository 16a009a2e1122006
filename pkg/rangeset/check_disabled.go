//go:build rangeset_unchecked

package rangeset

const checksEnabled = false
