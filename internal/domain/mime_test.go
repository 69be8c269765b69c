package domain

import "testing"

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		path       string
		wantMime   string
		wantInline bool
	}{
		{"report.pdf", "application/pdf", true},
		{"folder/Nested/File.PDF", "application/pdf", true},
		{"notes.md", "text/markdown", true},
		{"table.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"data.csv", "text/csv", true},
		{"movie.mp4", "video/mp4", true},
		{"pic.jpeg", "image/jpeg", true},
		{"archive.bin", "application/octet-stream", false},
		{"noextension", "application/octet-stream", false},
	}

	for _, tt := range tests {
		mime, inline := ContentTypeFor(tt.path)
		if mime != tt.wantMime || inline != tt.wantInline {
			t.Errorf("ContentTypeFor(%q) = (%q, %v), want (%q, %v)",
				tt.path, mime, inline, tt.wantMime, tt.wantInline)
		}
	}
}

func TestFileExtension(t *testing.T) {
	if got := FileExtension("a/b/Report.PDF"); got != ".pdf" {
		t.Errorf("FileExtension: got %q, want .pdf", got)
	}
	if got := FileExtension("noext"); got != "" {
		t.Errorf("FileExtension без расширения: got %q, want пустую строку", got)
	}
}
