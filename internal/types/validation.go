package types

import "github.com/studyforge/studyforge-client/internal/errors"

// Client-side precondition checks. A failed check means the request was
// never sent.

// ValidatePresent rejects empty required string fields.
func ValidatePresent(value, field string) error {
	if value == "" {
		return &errors.ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// ValidateDocumentIDs rejects session creation without at least one document.
func ValidateDocumentIDs(ids []string) error {
	if len(ids) == 0 {
		return &errors.ValidationError{Field: "documentIds", Reason: "at least one document is required"}
	}
	for _, id := range ids {
		if id == "" {
			return &errors.ValidationError{Field: "documentIds", Reason: "contains an empty id"}
		}
	}
	return nil
}

// ValidateQuizSource rejects quiz generation with neither a document nor text.
func ValidateQuizSource(documentID, documentText string) error {
	if documentID == "" && documentText == "" {
		return &errors.ValidationError{Field: "source", Reason: "either documentId or documentText is required"}
	}
	return nil
}
