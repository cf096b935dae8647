package fs

import (
	"golang.org/x/text/encoding/unicode"
)

// UnicodeEncoding identifies a byte-order-mark encoded text.
type UnicodeEncoding int

const (
	EncodingUnknown UnicodeEncoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e UnicodeEncoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8 bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	default:
		return "bytes"
	}
}

// DetectEncoding inspects the leading bytes of content for a byte-order mark.
func DetectEncoding(content []byte) UnicodeEncoding {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return EncodingUTF8BOM
	}
	if len(content) >= 2 {
		switch {
		case content[0] == 0xFF && content[1] == 0xFE:
			return EncodingUTF16LE
		case content[0] == 0xFE && content[1] == 0xFF:
			return EncodingUTF16BE
		}
	}
	return EncodingUnknown
}

// DecodeText converts UTF-16 content carrying a BOM into UTF-8. Anything else,
// including UTF-8 with a BOM, is returned untouched so byte offsets stay exact.
// The second result reports the detected encoding.
func DecodeText(content []byte) ([]byte, UnicodeEncoding) {
	enc := DetectEncoding(content)
	switch enc {
	case EncodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian), enc
	case EncodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian), enc
	default:
		return content, enc
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
