package domain

import (
	"path"
	"strings"
)

// Таблица расширение → MIME. Статическая и конечная: должна совпадать
// с тем, что ожидает клиентская логика выбора вьюера, поэтому мету
// блоба не используем.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".ppt":  "application/vnd.ms-powerpoint",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".json": "application/json",
	".xml":  "application/xml",
	".html": "text/html",
	".htm":  "text/html",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".zip":  "application/zip",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
}

const octetStream = "application/octet-stream"

// ContentTypeFor возвращает MIME по расширению файла и признак, можно ли
// показывать контент inline. Неизвестное расширение → octet-stream с
// принудительной загрузкой (attachment).
func ContentTypeFor(blobPath string) (mime string, inline bool) {
	ext := strings.ToLower(path.Ext(blobPath))
	if m, ok := mimeTypes[ext]; ok {
		return m, true
	}
	return octetStream, false
}

// FileExtension — расширение в нижнем регистре (с точкой), как в таблице
func FileExtension(blobPath string) string {
	return strings.ToLower(path.Ext(blobPath))
}
