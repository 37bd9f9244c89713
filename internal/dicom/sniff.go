package dicom

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extensions accepted without sniffing file contents.
var extensions = map[string]bool{
	".dcm":   true,
	".dicom": true,
}

// excludedExtensions are known non-DICOM extensions rejected without
// sniffing. Anything else (no extension, numeric slice suffixes like .001,
// vendor suffixes like .ima) is decided by the magic bytes.
var excludedExtensions = map[string]bool{
	".go":   true,
	".py":   true,
	".js":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".xml":  true,
	".txt":  true,
	".md":   true,
	".log":  true,
	".csv":  true,
	".exe":  true,
	".dll":  true,
	".so":   true,
	".zip":  true,
	".tar":  true,
	".gz":   true,
	".7z":   true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".html": true,
	".htm":  true,
	".sh":   true,
	".bat":  true,
	".toml": true,
	".lock": true,
}

// Sniff reports whether path looks like a DICOM file: either it carries a
// DICOM extension, or it is not a known non-DICOM file type and starts with
// the DICM magic bytes. It never decodes the dataset.
func Sniff(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if extensions[ext] {
		return true
	}
	if excludedExtensions[ext] {
		return false
	}
	return hasMagicBytes(path)
}

// hasMagicBytes checks for "DICM" at byte offset 128.
func hasMagicBytes(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 132)
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}
	return string(header[128:132]) == "DICM"
}
