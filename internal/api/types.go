package api

// UploadResult describes an ingested document: page/char counts from
// extraction and chunk/vector counts from indexing.
type UploadResult struct {
	Filename     string `json:"filename"`
	Pages        int    `json:"pages"`
	TotalChars   int    `json:"total_chars"`
	NumChunks    int    `json:"num_chunks"`
	TotalVectors int    `json:"total_vectors"`
	Message      string `json:"message"`
}

// Status reports the vector store contents.
type Status struct {
	TotalVectors int      `json:"total_vectors"`
	Documents    []string `json:"documents"`
}

// Source is one retrieved chunk backing an answer.
type Source struct {
	SourceID    int     `json:"source_id"`
	Document    string  `json:"document"`
	Page        int     `json:"page"`
	RerankScore float64 `json:"rerank_score,omitempty"`
}

// Answer is the response to a RAG query.
type Answer struct {
	Answer    string   `json:"answer"`
	Sources   []Source `json:"sources"`
	SessionID string   `json:"session_id"`
}

// StructuredSummary is the machine-readable half of a plain-language
// simplification. All fields are optional; the backend omits whatever its
// analysis could not produce.
type StructuredSummary struct {
	DocumentType          string   `json:"document_type,omitempty"`
	PlainEnglishSummary   string   `json:"plain_english_summary,omitempty"`
	KeyObligations        []string `json:"key_obligations,omitempty"`
	WhatYouMustDoNext     []string `json:"what_you_must_do_next,omitempty"`
	DeadlinesExtracted    []string `json:"deadlines_extracted,omitempty"`
	OverallWarnings       string   `json:"overall_warnings,omitempty"`
	SimplifiedExplanation []string `json:"simplified_explanation,omitempty"`
}

// SimplifyResult is a plain-language rendering of the uploaded document.
// RawText is markdown; Structured is present only when the backend managed
// to parse its own output.
type SimplifyResult struct {
	RawText        string             `json:"raw_text"`
	Structured     *StructuredSummary `json:"structured,omitempty"`
	ChunkCount     int                `json:"chunk_count"`
	TranslatedText string             `json:"translated_text,omitempty"`
	AudioURL       string             `json:"audio_url,omitempty"`
}

// LawyerCriteria are the search criteria for lawyer discovery.
type LawyerCriteria struct {
	PracticeArea  string   `json:"practice_area"`
	CaseType      string   `json:"case_type,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	UrgencyLevel  string   `json:"urgency_level,omitempty"`
	PreferredCity string   `json:"preferred_city"`
	BudgetLevel   string   `json:"budget_level,omitempty"`
	MaxResults    int      `json:"max_results,omitempty"`
}

// Lawyer is one ranked discovery result.
type Lawyer struct {
	Name     string  `json:"name"`
	Firm     string  `json:"firm"`
	Location string  `json:"location"`
	Website  string  `json:"website"`
	Domain   string  `json:"domain"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score,omitempty"`
}

// LawyerList is the lawyer discovery response.
type LawyerList struct {
	Lawyers []Lawyer `json:"lawyers"`
}

// Translation is a translated text plus its language pair.
type Translation struct {
	TranslatedText string `json:"translated_text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

// SpeechAudio points at a synthesized audio resource on the backend.
type SpeechAudio struct {
	AudioURL string `json:"audio_url"`
	Language string `json:"language"`
}
