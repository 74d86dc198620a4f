package match

import (
	"regexp"
	"strings"
)

const maxExtractedURLs = 5

var (
	urlRe   = regexp.MustCompile(`(?i)https?://[^\s)]+`)
	emailRe = regexp.MustCompile(`(?i)([a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,})`)

	obfuscatedAtRe  = regexp.MustCompile(`(?i)\[at\]|\(at\)|\sat\s`)
	obfuscatedDotRe = regexp.MustCompile(`(?i)\[dot\]|\(dot\)|\sdot\s`)
)

// ExtractURLs returns the distinct http(s) URLs found in text, in
// order of first appearance, capped at 5.
func ExtractURLs(text string) []string {
	seen := make(map[string]struct{})
	var urls []string
	for _, u := range urlRe.FindAllString(text, -1) {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
		if len(urls) == maxExtractedURLs {
			break
		}
	}
	return urls
}

// ExtractEmails returns the distinct lower-cased email addresses found
// in text, de-obfuscating the common "[at]"/"(dot)" spellings first.
func ExtractEmails(text string) []string {
	raw := obfuscatedAtRe.ReplaceAllString(text, "@")
	raw = obfuscatedDotRe.ReplaceAllString(raw, ".")
	raw = whitespaceRe.ReplaceAllString(raw, " ")

	seen := make(map[string]struct{})
	var emails []string
	for _, m := range emailRe.FindAllString(raw, -1) {
		addr := strings.ToLower(m)
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		emails = append(emails, addr)
	}
	return emails
}
