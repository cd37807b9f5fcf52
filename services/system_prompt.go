package services

import (
	"strings"

	"google.golang.org/genai"
)

const defaultSystemPrompt = `You are a helpful assistant that answers questions about the user's documents.

Use the file search tool to find the passages relevant to the question and base your answer on them. Quote or paraphrase the documents rather than relying on general knowledge. If the documents do not contain the answer, say so plainly instead of guessing.`

// GetSystemPrompt returns the instruction sent with every query. A custom
// instruction replaces the default one.
func GetSystemPrompt(custom string) *genai.Content {
	prompt := strings.TrimSpace(custom)
	if prompt == "" {
		prompt = defaultSystemPrompt
	}

	contents := genai.Text(prompt)
	if len(contents) == 0 {
		return nil
	}
	return contents[0]
}
