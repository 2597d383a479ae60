package ringlyregexp

func IsIPA(name string) bool {
	return IPA.MatchString(name)
}

func IsURL(name string) bool {
	return URL.MatchString(name)
}
