package server

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hyperifyio/blogdigest/internal/content"
)

// urlPattern accepts http(s) URLs whose host is a domain name, localhost or
// an IPv4 address, with an optional port and path.
var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// AllowedExtensions lists the upload file extensions accepted for images.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// processRequest is the JSON body of POST /process.
type processRequest struct {
	Input          string `json:"input"`
	InputType      string `json:"input_type"`
	Option         string `json:"option"`
	TargetLanguage string `json:"target_language"`
}

// validate checks a JSON request and returns the message shown to the
// client when it is rejected.
func (p processRequest) validate() (content.InputType, string) {
	input := strings.TrimSpace(p.Input)
	if input == "" {
		return "", "Input cannot be empty"
	}
	t, err := content.ParseInputType(p.InputType)
	if err != nil {
		return "", fmt.Sprintf("Invalid input type: %s", p.InputType)
	}
	if strings.TrimSpace(p.Option) == "" {
		return "", "Option must be specified"
	}
	if t == content.InputLink && !ValidURL(input) {
		return "", "Invalid URL format"
	}
	return t, ""
}

// ValidURL reports whether s looks like a fetchable web address.
func ValidURL(s string) bool {
	return urlPattern.MatchString(s)
}

// allowedFile reports whether name carries an accepted image extension.
func allowedFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}
