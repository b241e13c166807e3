//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification service is known; saves and
// exports still report through the status line and log.
func Notify(string, string, Options) error { return nil }
