package documents

// Validate turns the raw getFile arguments into categories.
//
// Each argument is either a single name ("pdf") or a list of names
// (["pdf", "image"]). Names that are not recognized, and arguments of any
// other shape, are skipped. Order is kept and duplicates are not removed.
// If nothing is left, ErrNoValidCategories is returned.
func Validate(args []any) ([]Category, error) {
	var cats []Category

	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			cats = appendName(cats, v)
		case []string:
			for _, name := range v {
				cats = appendName(cats, name)
			}
		case []any:
			for _, item := range v {
				if name, ok := item.(string); ok {
					cats = appendName(cats, name)
				}
			}
		}
	}

	if len(cats) == 0 {
		return nil, ErrNoValidCategories
	}
	return cats, nil
}

func appendName(cats []Category, name string) []Category {
	if c, ok := ParseCategory(name); ok {
		return append(cats, c)
	}
	return cats
}
