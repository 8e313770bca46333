package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// sensitiveFields name attributes and struct fields whose values never reach
// a log line.
var sensitiveFields = []string{
	"store_token", "storeToken", "StoreToken", "X-Store-Token",
	"token", "password", "secret",
	"authorization", "Authorization", "cookie", "Cookie",
	"api_key", "apiKey",
}

var (
	credentialValue = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+$`)
	jwtValue        = regexp.MustCompile(`^eyJ[\w-]*\.eyJ[\w-]*\.[\w-]*$`)
)

// RedactOptions returns the masq options every logger applies: the
// sensitive field names, credential-shaped values, and any string that
// contains one of secrets. Empty secrets are ignored.
func RedactOptions(secrets ...string) []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveFields)+len(secrets)+3)

	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(credentialValue),
		masq.WithRegex(jwtValue),
	)

	for _, s := range secrets {
		if s == "" {
			continue
		}
		opts = append(opts, masq.WithRegex(regexp.MustCompile(regexp.QuoteMeta(s))))
	}

	return opts
}

// NewReplaceAttr returns a slog ReplaceAttr function applying
// RedactOptions(secrets...).
func NewReplaceAttr(secrets ...string) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(RedactOptions(secrets...)...)
}
