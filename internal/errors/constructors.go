package errors

// Convenience functions for common error patterns

// Config errors

func ConfigInvalid(path string, cause error) *DocLinksError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ContentRootMissing(path string, cause error) *DocLinksError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "content root not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocLinksError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Scan errors

// BrokenLinks reports that a completed run produced error records.
func BrokenLinks(count int) *DocLinksError {
	return New(CategoryLinks, SeverityError, "broken references found").
		WithContext("count", count)
}

func DiscoveryError(root string, cause error) *DocLinksError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "document discovery failed").
		WithContext("root", root)
}

// Internal errors

func InternalError(message string, cause error) *DocLinksError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
