package controller

import "net/http"

// Messages is the fixed, user-facing text for one locale.
type Messages struct {
	MissingAPIKey  string
	InvalidRequest string
	FileRequired   string
	FileTooLarge   string
	byStatus       map[int]string
}

// ForStatus returns the fixed message for a status from the Gemini API, if
// the status has one.
func (m *Messages) ForStatus(status int) (string, bool) {
	msg, ok := m.byStatus[status]
	return msg, ok
}

var catalog = map[string]*Messages{
	"en": {
		MissingAPIKey:  "API key is required. Please set your Gemini API key first.",
		InvalidRequest: "Invalid request",
		FileRequired:   "A file is required",
		FileTooLarge:   "The file is too large",
		byStatus: map[int]string{
			http.StatusUnauthorized:       "Invalid API key. Please check your Gemini API key.",
			http.StatusForbidden:          "Permission denied. Your API key cannot access this resource.",
			http.StatusNotFound:           "The requested store or document was not found.",
			http.StatusTooManyRequests:    "Too many requests. Please try again later.",
			http.StatusServiceUnavailable: "The Gemini service is temporarily unavailable. Please try again later.",
		},
	},
	"zh": {
		MissingAPIKey:  "缺少 API 密钥，请先设置 Gemini API 密钥。",
		InvalidRequest: "请求无效",
		FileRequired:   "请选择要上传的文件",
		FileTooLarge:   "文件过大",
		byStatus: map[int]string{
			http.StatusUnauthorized:       "API 密钥无效，请检查您的 Gemini API 密钥。",
			http.StatusForbidden:          "权限不足，您的 API 密钥无法访问该资源。",
			http.StatusNotFound:           "未找到请求的存储或文档。",
			http.StatusTooManyRequests:    "请求过于频繁，请稍后再试。",
			http.StatusServiceUnavailable: "Gemini 服务暂时不可用，请稍后再试。",
		},
	},
}

// MessagesFor returns the catalog for locale, falling back to English.
func MessagesFor(locale string) *Messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog["en"]
}
