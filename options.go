package pngme

import "log/slog"

// Option configures behavior when opening PNG files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := pngme.Open("dice.png",
//	    pngme.WithStrictParsing(),
//	    pngme.WithMaxFileSize(32<<20),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool         // Fail on any warning
	ignoreWarnings bool         // Suppress all warnings
	maxFileSize    int64        // Maximum input size in bytes (0 = no limit)
	logger         *slog.Logger // Debug logging for file operations
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		strictParsing:  false,
		ignoreWarnings: false,
		maxFileSize:    0, // No limit
		logger:         slog.New(slog.DiscardHandler),
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, a file whose chunks parse cleanly but break a convention of
// the format (IHDR not first, IEND missing, reserved bit set) opens with
// warnings in File.Warnings. With strict parsing enabled, the first warning
// fails the open with ErrStrictParsing.
//
// Example:
//
//	file, err := pngme.Open("dice.png", pngme.WithStrictParsing())
//	// errors.Is(err, pngme.ErrStrictParsing) if the layout is unusual
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// File.Warnings will always be empty. When combined with WithStrictParsing,
// warnings are discarded before the strict check runs.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxFileSize rejects inputs larger than n bytes with ErrFileTooLarge.
//
// Files are read into memory whole, so this bounds the memory an open can
// use. Default is 0 (no limit).
func WithMaxFileSize(n int64) Option {
	return func(o *openOptions) {
		o.maxFileSize = n
	}
}

// WithLogger sets the logger used for debug output of file operations.
//
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// EncodeOption configures how File.Encode stores a message.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	compress bool
}

func defaultEncodeOptions() *encodeOptions {
	return &encodeOptions{}
}

// WithCompression stores the message as an LZ4 frame.
//
// Decode detects the frame and inflates it, so no option is needed to read
// the message back. Other tools will see binary chunk data.
func WithCompression() EncodeOption {
	return func(o *encodeOptions) {
		o.compress = true
	}
}
