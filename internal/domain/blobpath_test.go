package domain

import "testing"

// TestExtractBlobPath — путь извлекается одинаково для любой глубины
// вложенности, сегменты не теряются.
func TestExtractBlobPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "один сегмент",
			in:   "https://acct.storage.example.net/docs/a.pdf",
			want: "a.pdf",
		},
		{
			name: "вложенные папки",
			in:   "https://acct.storage.example.net/docs/a/b/c.pdf",
			want: "a/b/c.pdf",
		},
		{
			name: "глубокая вложенность",
			in:   "https://acct.storage.example.net/docs/y2025/q3/reports/final/v2.docx",
			want: "y2025/q3/reports/final/v2.docx",
		},
		{
			name: "http-схема",
			in:   "http://minio.local:9000/docs/folder/file.txt",
			want: "folder/file.txt",
		},
		{
			name: "только контейнер — пустой путь",
			in:   "https://acct.storage.example.net/docs",
			want: "",
		},
		{
			name: "не URL — возвращаем как есть",
			in:   "already/a/blob/path.pdf",
			want: "already/a/blob/path.pdf",
		},
		{
			name: "не URL с ведущим слэшем",
			in:   "/leading/slash.pdf",
			want: "leading/slash.pdf",
		},
		{
			name: "пустая строка",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBlobPath(tt.in); got != tt.want {
				t.Errorf("ExtractBlobPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlobFilename(t *testing.T) {
	if got := BlobFilename("a/b/c.pdf"); got != "c.pdf" {
		t.Errorf("BlobFilename: got %q, want c.pdf", got)
	}
	if got := BlobFilename("c.pdf"); got != "c.pdf" {
		t.Errorf("BlobFilename без папок: got %q, want c.pdf", got)
	}
}
