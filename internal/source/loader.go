package source

import (
	"fmt"
	"os"
)

// LoadFile reads, scans and extracts a Java source file into a SourceFile.
// A file that cannot be read or decoded as text returns an error; callers
// turn that into an UnreadableFile violation and continue with other files.
func LoadFile(path string, opts ScanOptions) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return LoadContent(path, string(data), opts)
}

// LoadContent scans and extracts an in-memory buffer, used for stdin mode.
func LoadContent(path, content string, opts ScanOptions) (*SourceFile, error) {
	lines, err := Scan(content, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return Extract(path, lines), nil
}
