package dto

// GenerateTestRequest is the inbound payload for AI test generation. The
// closed enumerations are enforced here by gin's binding layer; anything that
// fails binding is surfaced as a 400.
type GenerateTestRequest struct {
	TestType         string   `json:"testType" binding:"required,oneof=TOEIC IELTS"`
	Difficulty       string   `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced Expert"`
	IsFullTest       bool     `json:"isFullTest"`
	SpecificSections []string `json:"specificSections,omitempty"`
	SpecificTopics   []string `json:"specificTopics,omitempty"`
}

// GenerateTestResponse is returned with 201 once the test is published.
type GenerateTestResponse struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
