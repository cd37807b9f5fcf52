package clientstate

const (
	ModelGemini25Flash     = "gemini-2.5-flash"
	ModelGemini25Pro       = "gemini-2.5-pro"
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"
	ModelGemini20Flash     = "gemini-2.0-flash"

	DefaultModel = ModelGemini25Flash
)

// SupportedModels is the list offered to the user. Selection is not
// validated against it.
var SupportedModels = []string{
	ModelGemini25Flash,
	ModelGemini25Pro,
	ModelGemini25FlashLite,
	ModelGemini20Flash,
}

// AdvancedParams are independent; nil means "use the model default".
type AdvancedParams struct {
	SystemInstruction *string  `json:"systemInstruction,omitempty"`
	Temperature       *float32 `json:"temperature,omitempty"`
	MaxOutputTokens   *int32   `json:"maxOutputTokens,omitempty"`
	TopP              *float32 `json:"topP,omitempty"`
	TopK              *int32   `json:"topK,omitempty"`
	MetadataFilter    *string  `json:"metadataFilter,omitempty"`
}

type ModelSlice struct {
	SelectedModel string         `json:"selectedModel"`
	Params        AdvancedParams `json:"params"`
}

func NewModelSlice() ModelSlice {
	return ModelSlice{SelectedModel: DefaultModel}
}

func (s *ModelSlice) SetSelectedModel(model string) {
	s.SelectedModel = model
}

func (s *ModelSlice) SetSystemInstruction(v *string) { s.Params.SystemInstruction = v }
func (s *ModelSlice) SetTemperature(v *float32)      { s.Params.Temperature = v }
func (s *ModelSlice) SetMaxOutputTokens(v *int32)    { s.Params.MaxOutputTokens = v }
func (s *ModelSlice) SetTopP(v *float32)             { s.Params.TopP = v }
func (s *ModelSlice) SetTopK(v *int32)               { s.Params.TopK = v }
func (s *ModelSlice) SetMetadataFilter(v *string)    { s.Params.MetadataFilter = v }

func (s *ModelSlice) ResetAdvancedParams() {
	s.Params = AdvancedParams{}
}
