package logger

import (
	"io"
	"regexp"
)

// Patterns matching Kite Connect credential material as it would appear in
// log lines: token exchange fields, the composite Authorization header
// value and generic secret assignments.
var redactionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(access_token|request_token|public_token)["\s:=]+[a-zA-Z0-9._\-]+`),
	regexp.MustCompile(`(api_secret|checksum)["\s:=]+[a-zA-Z0-9._\-]+`),
	regexp.MustCompile(`token\s+[a-zA-Z0-9]+:[a-zA-Z0-9._\-]+`), // Authorization: token key:token
}

// Redactor is an io.Writer that masks credential material before it reaches
// the underlying sink.
type Redactor struct {
	writer io.Writer
}

// NewRedactor wraps w with credential masking.
func NewRedactor(w io.Writer) *Redactor {
	return &Redactor{writer: w}
}

// Redact masks credential material in s.
func Redact(s string) string {
	result := s
	for _, pattern := range redactionPatterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}

func (r *Redactor) Write(p []byte) (int, error) {
	if _, err := r.writer.Write([]byte(Redact(string(p)))); err != nil {
		return 0, err
	}
	// Report the original length so zerolog never sees a short write.
	return len(p), nil
}
