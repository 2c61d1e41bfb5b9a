package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/akramhany/repomind/internal/chunker"
)

// LoadDocuments reads the content of every walked file and returns one
// document per readable file. Files of unrecognized language are left out;
// files that disappear or become unreadable between the walk and the read
// are skipped silently, as are files with invalid UTF-8.
func LoadDocuments(files []FileInfo) ([]chunker.Document, error) {
	docs := make([]chunker.Document, 0, len(files))
	for _, f := range files {
		if f.Language == "unknown" {
			continue
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			continue
		}
		if !utf8.Valid(data) {
			continue
		}
		content := string(data)
		if content == "" {
			continue
		}
		docs = append(docs, chunker.Document{
			Content:   content,
			FilePath:  f.RelPath,
			FileName:  filepath.Base(f.RelPath),
			Extension: filepath.Ext(f.RelPath),
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("walker: no readable documents found")
	}
	return docs, nil
}
