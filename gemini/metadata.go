package gemini

import "google.golang.org/genai"

func StringMetadata(key, value string) *genai.CustomMetadata {
	return &genai.CustomMetadata{Key: key, StringValue: value}
}

func NumericMetadata(key string, value float64) *genai.CustomMetadata {
	return &genai.CustomMetadata{Key: key, NumericValue: genai.Ptr(float32(value))}
}

func StringListMetadata(key string, values []string) *genai.CustomMetadata {
	return &genai.CustomMetadata{Key: key, StringListValue: &genai.StringList{Values: values}}
}

// DocumentMetadata returns the string value stored under key.
func DocumentMetadata(doc *genai.Document, key string) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, m := range doc.CustomMetadata {
		if m != nil && m.Key == key && m.StringValue != "" {
			return m.StringValue, true
		}
	}
	return "", false
}
