package s3

import "testing"

func TestParseRange(t *testing.T) {
	const size = 1000

	tests := []struct {
		name      string
		hdr       string
		wantStart int64
		wantEnd   int64
		wantOK    bool
	}{
		{"первые 100 байт", "bytes=0-99", 0, 99, true},
		{"середина", "bytes=200-499", 200, 499, true},
		{"один байт", "bytes=42-42", 42, 42, true},
		{"открытый конец", "bytes=900-", 900, 999, true},
		{"последние 100", "bytes=-100", 900, 999, true},
		{"суффикс больше объекта", "bytes=-5000", 0, 999, true},
		{"конец клампится", "bytes=0-99999", 0, 999, true},

		// кривой синтаксис — диапазон игнорируем, отдаём полный объект
		{"мусор вместо чисел", "bytes=abc", 0, 0, false},
		{"мусор в границах", "bytes=a-b", 0, 0, false},
		{"без префикса", "0-99", 0, 0, false},
		{"пустой заголовок", "", 0, 0, false},
		{"только дефис", "bytes=-", 0, 0, false},
		{"start после end", "bytes=500-100", 0, 0, false},
		{"start за пределами", "bytes=5000-6000", 0, 0, false},
		{"отрицательный суффикс", "bytes=--5", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := parseRange(tt.hdr, size)
			if ok != tt.wantOK {
				t.Fatalf("parseRange(%q) ok = %v, want %v", tt.hdr, ok, tt.wantOK)
			}
			if ok && (start != tt.wantStart || end != tt.wantEnd) {
				t.Errorf("parseRange(%q) = [%d, %d], want [%d, %d]",
					tt.hdr, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParseRange_EmptyObject(t *testing.T) {
	if _, _, ok := parseRange("bytes=0-10", 0); ok {
		t.Error("для пустого объекта диапазон не применяется")
	}
}
