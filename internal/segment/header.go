package segment

import "strings"

// parseHeader interprets a fence info line. A "lang:path" pair yields both
// attributes; otherwise a header containing a slash, or a dot while not
// starting with "mermaid", is taken as a file path, and anything else as a
// lowercased language tag.
func parseHeader(header string) (language, filePath string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ""
	}
	if lang, path, ok := splitLangPath(header); ok {
		return strings.ToLower(lang), path
	}
	if strings.Contains(header, "/") ||
		(strings.Contains(header, ".") && !strings.HasPrefix(header, "mermaid")) {
		return "", header
	}
	return strings.ToLower(header), ""
}

// splitLangPath matches the "languageToken:pathToken" header form. The
// language token must be non-empty and free of slashes and whitespace.
func splitLangPath(header string) (lang, path string, ok bool) {
	i := strings.IndexByte(header, ':')
	if i <= 0 || i == len(header)-1 {
		return "", "", false
	}
	lang, path = header[:i], header[i+1:]
	if strings.ContainsAny(lang, "/ \t") {
		return "", "", false
	}
	return lang, path, true
}

// applyHeader parses the header line onto the open code block.
func (a *Accumulator) applyHeader(header string) {
	el := a.store.last()
	el.Language, el.FilePath = parseHeader(header)
}
