package parsing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// ParseJSON decodes a CVData JSON document. Unlike markdown, malformed JSON
// is an error.
func ParseJSON(data []byte) (*ParseResult, error) {
	var cv types.CVData
	if err := json.Unmarshal(data, &cv); err != nil {
		return nil, &ParseError{Message: "invalid CV JSON", Cause: err}
	}
	cv.Normalize()

	res := &ParseResult{Data: &cv, Confidence: confidence(&cv)}
	if cv.PersonalInfo.Name.Full == types.PlaceholderName {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnMissingName, Message: "no candidate name found"})
	}
	return res, nil
}

// LoadFile reads a profile from disk, choosing the decoder by extension.
// .json files are decoded as CVData; everything else is parsed as markdown.
func LoadFile(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(string(data)), nil
}
