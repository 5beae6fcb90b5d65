package resumes

import "encoding/json"

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	ID         string `json:"id"`
	ResumeText string `json:"resume_text"`
}

// AnalyzeRequest attaches a structured analysis to an existing record.
type AnalyzeRequest struct {
	ID             string          `json:"id"`
	StructuredJSON json.RawMessage `json:"structured_json"`
}

// AnalyzeResponse acknowledges a saved analysis.
type AnalyzeResponse struct {
	Saved bool `json:"saved"`
}

// GenerateRequest asks for a tailored document to be rendered.
type GenerateRequest struct {
	ID           string `json:"id"`
	TailoredText string `json:"tailored_text"`
}

// GenerateResponse points at the generated file.
type GenerateResponse struct {
	DownloadLink string `json:"download_link"`
}
