package entity

// Prompt is a named, reusable text template from the platform catalog.
type Prompt struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PromptText string `json:"prompt_text"`
}

// PromptInput carrega os campos aceitos pela API ao criar ou atualizar um prompt.
type PromptInput struct {
	Name       string `json:"name"`
	PromptText string `json:"prompt_text"`
}
