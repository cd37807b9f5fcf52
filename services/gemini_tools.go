package services

import "google.golang.org/genai"

// GetFileSearchTools builds the retrieval tool that grounds an answer in the
// given stores. Store ids are turned into full resource names.
func GetFileSearchTools(storeIDs []string, metadataFilter string) []*genai.Tool {
	return []*genai.Tool{
		{
			FileSearch: &genai.FileSearch{
				FileSearchStoreNames: storeNames(storeIDs),
				MetadataFilter:       metadataFilter,
			},
		},
	}
}
