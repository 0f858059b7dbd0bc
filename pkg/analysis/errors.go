package analysis

// ConfigurationError reports a missing or unusable local setting. Its message
// is meant to be shown to the user as-is.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ErrMissingAPIKey is returned by Analyze when no API credential is configured.
var ErrMissingAPIKey = &ConfigurationError{Message: "缺少 API 密钥。请检查您的环境配置。"}
