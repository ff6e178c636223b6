package services

import "strings"

// trimText is the only normalization applied to user text. Content is kept
// as submitted so extraction sees exactly what the author wrote; clients
// escape it when rendering.
func trimText(s string) string {
	return strings.TrimSpace(s)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := trimText(*s)
	return &trimmed
}
