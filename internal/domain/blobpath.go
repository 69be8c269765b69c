package domain

import (
	"net/url"
	"strings"
)

// ExtractBlobPath выделяет путь блоба из полного storage URL вида
// https://account.host/container/a/b/c.pdf → "a/b/c.pdf".
// Берём всё после сегмента контейнера, сегменты не теряем — вложенные
// папки обрабатываются так же, как одиночный файл. Если вход не URL,
// считаем его уже готовым путём и возвращаем как есть.
func ExtractBlobPath(storagePath string) string {
	if !strings.HasPrefix(storagePath, "http://") && !strings.HasPrefix(storagePath, "https://") {
		return strings.TrimPrefix(storagePath, "/")
	}

	u, err := url.Parse(storagePath)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(storagePath, "/")
	}

	segs := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	// segs[0] — контейнер; путь — всё, что после него
	if len(segs) < 2 {
		return ""
	}
	return strings.Join(segs[1:], "/")
}

// BlobFilename — последний сегмент пути (имя файла для Content-Disposition)
func BlobFilename(blobPath string) string {
	if i := strings.LastIndex(blobPath, "/"); i >= 0 {
		return blobPath[i+1:]
	}
	return blobPath
}
