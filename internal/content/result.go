// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

// Result is the JSON answer of the parse command.
type Result struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	FullText  string `json:"fullText,omitempty"`
	Pages     []Page `json:"pages,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
}

// NewResult packages a provider outcome.
func NewResult(doc *Document, err error) Result {
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{
		Success:   true,
		FullText:  doc.FullText,
		Pages:     doc.Pages,
		PageCount: doc.PageCount,
	}
}
