package constants

import "io/fs"

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
	// SecretFilePerm is used for files that may carry an API key.
	SecretFilePerm fs.FileMode = 0o600
)
