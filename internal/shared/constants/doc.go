// Package constants centralizes file-permission defaults shared across the
// CLI.
//
// Keeping them in one place prevents magic numbers from scattering across
// cmd/ and internal/, and makes the secret-bearing config file permission
// easy to audit.
package constants
