// Package errors provides classified error primitives used across vault2hugo.
//
// A ClassifiedError carries a broad category (config, filesystem, docs, ...),
// a severity and structured context. Errors are built with the fluent
// ErrorBuilder:
//
//	err := errors.ConfigurationError("resource path is not absolute").
//		WithContext("path", candidate).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
