//go:build !httpdebug

package response

// assertNoCRLFInjection is a no-op outside httpdebug builds.
func assertNoCRLFInjection(string) {}
