package logger

import (
	"strings"
)

// sensitiveKeyFragments 键名命中任一片段即视为敏感
// Cloudinary的api_secret和上传签名一旦泄露即可伪造上传请求，必须全部覆盖
var sensitiveKeyFragments = []string{
	"token",
	"password",
	"passwd",
	"pwd",
	"secret",
	"api_key",
	"apikey",
	"api-key",
	"authorization",
	"auth",
	"signature",
}

// MaskToken 脱敏凭证字符串
// 8位以下整体掩盖，其余保留前4后4
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) < 8 {
		return "***"
	}

	masked := strings.Repeat("*", len(token)-8)
	return token[:4] + masked + token[len(token)-4:]
}

// IsSensitiveKey 报告键名是否命中敏感片段
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// SanitizeValue 敏感键对应的值脱敏，字符串走MaskToken，其余类型整体掩盖
func SanitizeValue(key string, value interface{}) interface{} {
	if !IsSensitiveKey(key) {
		return value
	}
	if s, ok := value.(string); ok {
		return MaskToken(s)
	}
	return "***MASKED***"
}

// SanitizeArgs 批量脱敏slog键值对参数
// 偶数位为键，奇数位为对应值；键不是字符串时该对原样通过
func SanitizeArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		result[i+1] = SanitizeValue(key, result[i+1])
	}

	return result
}
