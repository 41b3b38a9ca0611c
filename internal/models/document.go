package models

import (
	"time"
)

// UploadedFile is the registry metadata for one uploaded document.
type UploadedFile struct {
	SessionID   string    `json:"session_id"`
	Filename    string    `json:"filename"`
	StoredName  string    `json:"stored_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Explanation is the result of the classify-then-explain pipeline.
type Explanation struct {
	SessionID    string `json:"session_id"`
	Filename     string `json:"filename"`
	DocumentType string `json:"document_type"`
	Explanation  string `json:"explanation"`
}

// SessionList reports registry counts and the known session ids.
type SessionList struct {
	UploadedFiles     int      `json:"uploaded_files"`
	ActiveRAGSessions int      `json:"active_rag_sessions"`
	Sessions          []string `json:"sessions"`
}

// DefaultCategory is the classifier fallback when no category fits.
const DefaultCategory = "General Legal Document"

// Categories is the closed classification taxonomy. The classifier prompt
// enumerates it verbatim; responses are not validated against it.
var Categories = []string{
	"Non-Disclosure Agreement",
	"Service Agreement",
	"Lease Agreement",
	"Arrest Warrant",
	"Power of Attorney",
	"Will",
	"Court Summons",
	"Divorce Decree",
	"Affidavit",
	"Partnership Agreement",
	"Employment Contract",
	"Memorandum of Understanding",
	"Sale Deed",
	"FIR",
	"Bail Order",
	"Legal Notice",
	"Court Order",
	"Judgment",
	"License",
	"Bond",
	"Complaint",
	"General Legal Document",
	"Other Legal Document",
}
