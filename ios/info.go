package ios

import "fmt"

const (
	InfoPlistName = "Info.plist"
)

// Keys of an Info.plist that are inspected or rewritten.
const (
	KeyBundleIdentifier          = "CFBundleIdentifier"
	KeyBundleURLTypes            = "CFBundleURLTypes"
	KeyBundleURLSchemes          = "CFBundleURLSchemes"
	KeyBundleIconFiles           = "CFBundleIconFiles"
	KeyBundleIcons               = "CFBundleIcons"
	KeyBundlePrimaryIcon         = "CFBundlePrimaryIcon"
	KeyApplicationQueriesSchemes = "LSApplicationQueriesSchemes"
)

// Info is an app bundle's Info.plist as a generic dictionary, the shape
// produced by `plutil -convert json` or by decoding the plist directly.
// A nil Info stands for metadata that could not be loaded.
type Info map[string]any

// Identifier returns CFBundleIdentifier.
func (i Info) Identifier() (string, error) {
	if i == nil {
		return "", fmt.Errorf("no info to read %s from", KeyBundleIdentifier)
	}

	v, ok := i[KeyBundleIdentifier]
	if !ok {
		return "", fmt.Errorf("key %s not found", KeyBundleIdentifier)
	}

	id, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("key %s is %T, not a string", KeyBundleIdentifier, v)
	}

	return id, nil
}

// URLSchemes walks CFBundleURLTypes and returns every scheme declared by
// its entries in order. Entries without CFBundleURLSchemes are skipped.
// It reports false when there are no URL types to walk, or when an entry
// is malformed, in which case only the schemes found before it are returned.
func (i Info) URLSchemes() ([]string, bool) {
	urlTypes, ok := lookupSlice(i, KeyBundleURLTypes)
	if !ok {
		return nil, false
	}

	schemes := []string{}
	for _, v := range urlTypes {
		urlType, ok := v.(map[string]any)
		if !ok {
			return schemes, false
		}

		raw, ok := urlType[KeyBundleURLSchemes]
		if !ok {
			continue
		}

		s, ok := raw.([]any)
		if !ok {
			return schemes, false
		}

		for _, scheme := range s {
			schemes = append(schemes, fmt.Sprint(scheme))
		}
	}

	return schemes, true
}

// IconFiles returns the icon base names that the bundle declares, taken
// from CFBundleIconFiles or, only when that is absent, from
// CFBundleIcons.CFBundlePrimaryIcon.CFBundleIconFiles.
func (i Info) IconFiles() ([]string, error) {
	if files, ok := firstOf(
		func() ([]string, bool) {
			return lookupStrings(i, KeyBundleIconFiles)
		},
		func() ([]string, bool) {
			icons, ok := lookupMap(i, KeyBundleIcons)
			if !ok {
				return nil, false
			}

			primary, ok := lookupMap(icons, KeyBundlePrimaryIcon)
			if !ok {
				return nil, false
			}

			return lookupStrings(primary, KeyBundleIconFiles)
		},
	); ok {
		return files, nil
	}

	return nil, fmt.Errorf("neither %s nor %s.%s.%s found",
		KeyBundleIconFiles,
		KeyBundleIcons, KeyBundlePrimaryIcon, KeyBundleIconFiles,
	)
}

// firstOf calls each lookup in order and returns the
// result of the first one that succeeds.
func firstOf[T any](lookups ...func() (T, bool)) (T, bool) {
	for _, lookup := range lookups {
		if v, ok := lookup(); ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}

func lookupMap(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}

	switch mv := v.(type) {
	case map[string]any:
		return mv, true
	case Info:
		return mv, true
	}

	return nil, false
}

func lookupSlice(m map[string]any, key string) ([]any, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}

	s, ok := v.([]any)
	return s, ok
}

func lookupStrings(m map[string]any, key string) ([]string, bool) {
	s, ok := lookupSlice(m, key)
	if !ok {
		return nil, false
	}

	strs := make([]string, 0, len(s))
	for _, v := range s {
		str, ok := v.(string)
		if !ok {
			return nil, false
		}

		strs = append(strs, str)
	}

	return strs, true
}
