package encode

import "github.com/fatih/color"

type colors struct {
	key  func(string, ...any) string
	str  func(string, ...any) string
	num  func(string, ...any) string
	bool func(string, ...any) string
	null func(string, ...any) string
}

func newColors() *colors {
	return &colors{
		key:  color.RGB(128, 168, 196).SprintfFunc(),
		str:  color.GreenString,
		num:  color.RGB(128, 216, 236).SprintfFunc(),
		bool: color.CyanString,
		null: color.RGB(168, 0, 196).SprintfFunc(),
	}
}

func (c *colors) scalar(v any, rendered string) string {
	switch v.(type) {
	case string:
		return c.str("%s", rendered)
	case bool:
		return c.bool("%s", rendered)
	case nil:
		return c.null("%s", rendered)
	default:
		return c.num("%s", rendered)
	}
}
