package ringlyregexp

import "regexp"

var (
	IPA = regexp.MustCompile(`(?i)^[\w/.@ -]+\.ipa$`)
	URL = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]+://`)
)
