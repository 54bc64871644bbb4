package model

import "time"

// SourcePDF is the source tag stored for PDF-backed documents. URL-backed
// documents store the URL itself in Source.
const SourcePDF = "pdf"

type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Source    string    `gorm:"not null" json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }

// IsPDF reports whether the document was ingested from a PDF file.
func (d *Document) IsPDF() bool { return d.Source == SourcePDF }
