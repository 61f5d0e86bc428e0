package pngme

// SaveOption configures behavior when writing PNG files.
//
// Example:
//
//	err := file.Save(
//	    pngme.WithBackup(".bak"),
//	    pngme.WithValidation(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving files.
type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-open after write and compare bytes
	preserveModTime bool   // Copy the source file's modification time
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup keeps the previous contents of the output path.
//
// Before the new file is renamed into place, an existing file at the output
// path is renamed to path+suffix. WithBackup(".bak") turns "dice.png" into
// "dice.png.bak". An existing backup is overwritten. Nothing is backed up
// when the output path does not exist yet.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-opens the written file and checks that it parses and
// matches the in-memory chunks byte for byte.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime gives the output the modification time of File.Path,
// so hiding a message does not change the image's "modified" date.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
