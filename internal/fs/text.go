package fs

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// IsTextFile determines if content looks like text rather than binary data.
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}

	if enc := detectUnicodeEncoding(sample); enc != encodingUnknown {
		return true
	}

	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}

	if utf8.Valid(trimPartialRune(sample)) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

// SniffText reads the head of src and reports whether it looks like text. The position of
// src is left where it was.
func SniffText(src io.ReadSeeker) (bool, error) {
	cur, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}
	defer func() {
		_, _ = src.Seek(cur, io.SeekStart)
	}()

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	sample, err := io.ReadAll(io.LimitReader(src, textDetectionSampleSize))
	if err != nil {
		return false, err
	}
	return IsTextFile(sample), nil
}

// trimPartialRune drops an incomplete encoding cut off by the sample boundary.
func trimPartialRune(sample []byte) []byte {
	for i := len(sample) - 1; i >= 0 && i >= len(sample)-utf8.UTFMax; i-- {
		if utf8.RuneStart(sample[i]) {
			if !utf8.FullRune(sample[i:]) {
				return sample[:i]
			}
			break
		}
	}
	return sample
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func isUTF16(enc unicodeEncoding) bool {
	return enc == encodingUTF16LE || enc == encodingUTF16BE
}

// NormalizeTextContent converts UTF-16 (BOM) content into UTF-8 so that every byte offset
// the pager computes refers to UTF-8 text. Other content is returned unchanged; a UTF-8
// BOM stays in place so offsets keep matching the original input.
func NormalizeTextContent(content []byte) []byte {
	switch detectUnicodeEncoding(content) {
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return content
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) []byte {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return content
	}
	return out
}
