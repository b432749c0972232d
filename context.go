package safetyhub

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	languageContextKey contextKey = iota + 1
	requestIDContextKey
)

// Language context helpers

// NewContextWithLanguage attaches the negotiated display language.
func NewContextWithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, languageContextKey, lang)
}

// LanguageFromContext returns the display language from the context, or the
// default language when none was negotiated.
func LanguageFromContext(ctx context.Context) Language {
	if lang, ok := ctx.Value(languageContextKey).(Language); ok && lang.IsValid() {
		return lang
	}
	return DefaultLanguage
}

// Request ID context helpers

// NewContextWithRequestID attaches a request ID to the context.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext returns the request ID from the context, or empty string.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
