package models

// TranscriptRequest is the body of POST /transcript.
type TranscriptRequest struct {
	URL string `json:"url"`
}

// TranscriptResponse carries the flattened, decoded caption text.
type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

// SummaryRequest is the body of POST /summary. The transcript is forwarded
// to the completion provider verbatim.
type SummaryRequest struct {
	Transcript string `json:"transcript"`
}

// SummaryResponse carries the completion provider's output, unmodified.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse is the error body for every endpoint. Details is only
// populated in debug mode.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}
