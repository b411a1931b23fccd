// Package fstool provides file-system tools: read, write, replace, list,
// and create-directory. The tools are registered through the doc-text
// inference path; failures are reported as result text so the model sees them
// as observations and can adjust.
package fstool

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skosovsky/reagent"
)

// Tools builds all file-system tools rooted at the current working directory.
func Tools() ([]*reagent.Tool, error) {
	var tools []*reagent.Tool
	for _, build := range []func() (*reagent.Tool, error){
		ReadFile, WriteFile, ReplaceText, ListFilesRecursive, CreateDirectory,
	} {
		t, err := build()
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// ReadFile builds the read_file tool.
func ReadFile() (*reagent.Tool, error) {
	return reagent.NewDocTool("read_file", `
Reads the content of a file.

Args:
    path: The path to the file.

Returns:
    The content of the file, or an error message.
`, func(path string) string {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Sprintf("Error reading file: %v", err)
		}
		return string(data)
	})
}

// WriteFile builds the write_file tool.
func WriteFile() (*reagent.Tool, error) {
	return reagent.NewDocTool("write_file", `
Writes content to a file.

Args:
    path: The path to the file.
    content: The content to write.

Returns:
    A confirmation message.
`, func(path, content string) string {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Sprintf("Error writing file: %v", err)
		}
		return fmt.Sprintf("File '%s' written successfully.", path)
	})
}

// ReplaceText builds the replace_text tool.
func ReplaceText() (*reagent.Tool, error) {
	return reagent.NewDocTool("replace_text", `
Replaces text in a file.

Args:
    path: The path to the file.
    old_text: The text to replace.
    new_text: The new text.

Returns:
    A confirmation message.
`, func(path, oldText, newText string) string {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Sprintf("Error replacing text: %v", err)
		}
		replaced := strings.ReplaceAll(string(data), oldText, newText)
		if err := os.WriteFile(path, []byte(replaced), 0o644); err != nil {
			return fmt.Sprintf("Error replacing text: %v", err)
		}
		return fmt.Sprintf("Text in '%s' replaced successfully.", path)
	})
}

// ListFilesRecursive builds the list_files_recursive tool.
func ListFilesRecursive() (*reagent.Tool, error) {
	return reagent.NewDocTool("list_files_recursive", `
Lists all files in a directory and its subdirectories.

Args:
    path: The path to the directory.

Returns:
    A list of file paths.
`, func(path string) []string {
		var files []string
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return []string{fmt.Sprintf("Error listing files: %v", err)}
		}
		return files
	})
}

// CreateDirectory builds the create_directory tool.
func CreateDirectory() (*reagent.Tool, error) {
	return reagent.NewDocTool("create_directory", `
Creates a new directory.

Args:
    path: The path to the directory to create.

Returns:
    A confirmation message.
`, func(path string) string {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Sprintf("Error creating directory: %v", err)
		}
		return fmt.Sprintf("Directory '%s' created successfully.", path)
	})
}
