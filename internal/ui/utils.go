package ui

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Jazz4325/ndvi-pipeline/internal/properties"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin with validation
func ReadInt(prompt string, min, max int) (int, error) {
	input := ReadString(prompt)

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return value, nil
}

// ReadPositiveInt reads a positive integer from stdin
func ReadPositiveInt(prompt string) (int, error) {
	input := ReadString(prompt)

	value, err := strconv.Atoi(input)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid number: %s. Please enter a positive integer", input)
	}
	return value, nil
}

// ReadFloatDefault reads a float from stdin, falling back to a default on
// empty input.
func ReadFloatDefault(prompt string, fallback float64) (float64, error) {
	input := ReadString(fmt.Sprintf("%s [%g]: ", prompt, fallback))
	if input == "" {
		return fallback, nil
	}

	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	return value, nil
}

// SelectFile lists the files of a data subfolder matching the given
// extensions and returns the one the user picks.
func SelectFile(subDir string, extensions []string, prompt string) (string, error) {
	dirPath := filepath.Join(properties.RootPath(), "data", subDir)

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return "", fmt.Errorf("error reading %s folder: %s", subDir, err.Error())
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(entry.Name()), ext) {
				files = append(files, entry.Name())
				break
			}
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no matching files found in %s", dirPath)
	}

	fmt.Printf("%s\nAvailable files:%s\n", ColorGreen, ColorReset)
	for i, name := range files {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, name, ColorReset)
	}

	choice, err := ReadInt(prompt, 1, len(files))
	if err != nil {
		return "", err
	}
	return filepath.Join(dirPath, files[choice-1]), nil
}

// EnsureResultDirectory creates a data subfolder for outputs and returns it.
func EnsureResultDirectory(subDir string) (string, error) {
	resultPath := filepath.Join(properties.RootPath(), "data", subDir)
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create %s folder: %v", subDir, err)
	}
	return resultPath, nil
}
