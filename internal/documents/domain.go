package documents

import "time"

// Document is sales material shared with the field team. It carries either
// an inline base64 payload or a URL, never both.
type Document struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description *string   `json:"description" bson:"description,omitempty"`
	Type        string    `json:"type" bson:"type"`
	CustomerID  *string   `json:"customer_id" bson:"customer_id,omitempty"`
	UploadedBy  string    `json:"uploaded_by" bson:"uploaded_by"`
	FileBase64  *string   `json:"file_base64,omitempty" bson:"file_base64,omitempty"`
	FileName    *string   `json:"file_name,omitempty" bson:"file_name,omitempty"`
	FileType    *string   `json:"file_type,omitempty" bson:"file_type,omitempty"`
	URL         *string   `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Inline reports whether the document stores its payload itself.
func (d Document) Inline() bool { return d.FileBase64 != nil }

// CreateDocumentRequest is the body of POST /documents.
type CreateDocumentRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required"`
	CustomerID  *string `json:"customer_id"`
	FileBase64  *string `json:"file_base64" validate:"omitempty,base64"`
	FileName    *string `json:"file_name"`
	FileType    *string `json:"file_type"`
	URL         *string `json:"url" validate:"omitempty,url"`
}

// ListFilter narrows document listings.
type ListFilter struct {
	CustomerID string
}
