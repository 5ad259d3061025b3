package entity

// PermissionSet is the set of prompts an account may use, represented by ID.
// The API replaces the whole set on every sync call; the client never diffs.
type PermissionSet struct {
	PromptIDs []int `json:"prompt_ids"`
}

// Contains reporta se o prompt informado faz parte do conjunto.
func (p PermissionSet) Contains(promptID int) bool {
	for _, id := range p.PromptIDs {
		if id == promptID {
			return true
		}
	}
	return false
}
