// Package errors provides the classified error primitives used across sitegen.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, filesystem, render, build)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.ValidationError("slug collision").
//		WithContext("path", "sezioni/caffe.html").
//		WithContext("first", "section \"Caffè\"").
//		Build()
package errors
