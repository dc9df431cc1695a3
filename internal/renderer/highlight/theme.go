package highlight

import (
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/renderer/core"
)

// role names a semantic color slot that every built-in palette fills in.
// Token styles are derived from roles rather than spelled out per theme,
// so adding a token type only requires mapping it to a role once.
type role int

const (
	roleComment role = iota
	roleKeyword
	roleKeywordDecl
	roleString
	roleEscape
	roleNumber
	roleFunction
	roleBuiltinFunc
	roleType
	roleVariable
	roleParameter
	roleConstant
	roleOperator
	rolePunctuation
	roleInvalid
	roleInvalidBg
)

// palette is the set of RGB colors a built-in theme supplies for each role.
type palette map[role]core.Color

// Theme defines colors and styles for syntax highlighting.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the editor background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// Selection is the selection highlight color.
	Selection core.Color

	// Cursor is the cursor color.
	Cursor core.Color

	// LineHighlight is the current line highlight color.
	LineHighlight core.Color

	// TokenStyles maps token types to their styles.
	TokenStyles map[TokenType]core.Style

	// ScopeStyles maps scope strings to styles (for custom scopes).
	ScopeStyles map[string]core.Style

	// DiagnosticStyles maps a buffer.Severity to the style used for its
	// inline marker and underline. Built from the same palette as token
	// styles so a theme's error color always matches its TokenInvalid color.
	DiagnosticStyles map[buffer.Severity]core.Style
}

// StyleForToken returns the style for a given token type.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return style
	}
	return t.fallbackStyle()
}

// StyleForScope returns the style for a given scope string, walking up
// the dotted scope hierarchy (e.g. "comment.line.double-slash" falls
// back to "comment.line", then "comment") before giving up.
func (t *Theme) StyleForScope(scope string) core.Style {
	if style, ok := t.ScopeStyles[scope]; ok {
		return style
	}
	if tokenType := TokenTypeFromString(scope); tokenType != TokenNone {
		if style, ok := t.TokenStyles[tokenType]; ok {
			return style
		}
	}
	for s := scope; s != ""; s = parentScope(s) {
		if style, ok := t.ScopeStyles[s]; ok {
			return style
		}
	}
	return t.fallbackStyle()
}

// StyleForSeverity returns the diagnostic marker style for sev, falling
// back to the invalid-token style if the theme defines no explicit one.
func (t *Theme) StyleForSeverity(sev buffer.Severity) core.Style {
	if style, ok := t.DiagnosticStyles[sev]; ok {
		return style
	}
	return t.StyleForToken(TokenInvalid)
}

func (t *Theme) fallbackStyle() core.Style {
	return core.Style{
		Foreground: t.Foreground,
		Background: core.ColorDefault,
	}
}

// parentScope strips the last dot-separated segment off scope.
func parentScope(scope string) string {
	for i := len(scope) - 1; i >= 0; i-- {
		if scope[i] == '.' {
			return scope[:i]
		}
	}
	return ""
}

// buildFromPalette turns a palette into the full TokenStyles map shared
// by every built-in theme's token→color assignment.
func buildFromPalette(p palette) map[TokenType]core.Style {
	plain := func(r role) core.Style { return core.NewStyle(p[r]) }

	styles := map[TokenType]core.Style{
		TokenComment:      plain(roleComment).Italic(),
		TokenCommentLine:  plain(roleComment).Italic(),
		TokenCommentBlock: plain(roleComment).Italic(),
		TokenCommentDoc:   plain(roleComment).Italic(),

		TokenString:             plain(roleString),
		TokenStringQuoted:       plain(roleString),
		TokenStringInterpolated: plain(roleString),
		TokenStringRegexp:       plain(roleString),
		TokenStringEscape:       plain(roleEscape),

		TokenNumber:        plain(roleNumber),
		TokenNumberInteger: plain(roleNumber),
		TokenNumberFloat:   plain(roleNumber),
		TokenNumberHex:     plain(roleNumber),
		TokenNumberOctal:   plain(roleNumber),
		TokenNumberBinary:  plain(roleNumber),

		TokenKeyword:            plain(roleKeyword),
		TokenKeywordControl:     plain(roleKeyword),
		TokenKeywordOperator:    plain(roleKeyword),
		TokenKeywordOther:       plain(roleKeyword),
		TokenKeywordDeclaration: plain(roleKeywordDecl),

		TokenOperator:             plain(roleOperator),
		TokenOperatorAssignment:   plain(roleOperator),
		TokenOperatorComparison:   plain(roleOperator),
		TokenOperatorArithmetic:   plain(roleOperator),
		TokenOperatorLogical:      plain(roleOperator),
		TokenPunctuation:          plain(rolePunctuation),
		TokenPunctuationBracket:   plain(rolePunctuation),
		TokenPunctuationDelimiter: plain(rolePunctuation),

		TokenIdentifier:        plain(roleVariable),
		TokenVariable:          plain(roleVariable),
		TokenVariableParameter: plain(roleParameter),
		TokenVariableOther:     plain(roleVariable),
		TokenConstant:          plain(roleConstant),
		TokenConstantLanguage:  plain(roleKeyword),

		TokenFunction:            plain(roleFunction),
		TokenFunctionDeclaration: plain(roleFunction),
		TokenFunctionCall:        plain(roleFunction),
		TokenFunctionMethod:      plain(roleFunction),
		TokenFunctionBuiltin:     plain(roleBuiltinFunc),

		TokenTypeName:      plain(roleType),
		TokenTypeBuiltin:   plain(roleType),
		TokenTypeClass:     plain(roleType),
		TokenTypeInterface: plain(roleType),
		TokenTypeStruct:    plain(roleType),
		TokenTypeEnum:      plain(roleType),
		TokenTypeParameter: plain(roleParameter),

		TokenStorage:         plain(roleKeyword),
		TokenStorageType:     plain(roleKeyword),
		TokenStorageModifier: plain(roleKeyword),

		TokenInvalid:           plain(roleInvalid),
		TokenInvalidDeprecated: plain(roleInvalid).Strikethrough(),
		TokenInvalidIllegal:    plain(roleInvalid).Bold(),

		TokenMarkupHeading: plain(roleKeyword).Bold(),
		TokenMarkupBold:    core.DefaultStyle().Bold(),
		TokenMarkupItalic:  core.DefaultStyle().Italic(),
		TokenMarkupCode:    plain(roleString),
		TokenMarkupLink:    plain(roleType).Underline(),
	}

	if bg, ok := p[roleInvalidBg]; ok {
		styles[TokenInvalid] = styles[TokenInvalid].WithBackground(bg)
	}

	return styles
}

// diagnosticStylesFromPalette derives the four severity marker styles
// from a theme's own invalid/warning-ish roles, so every built-in theme
// gets diagnostic colors for free without a separate table per theme.
func diagnosticStylesFromPalette(p palette) map[buffer.Severity]core.Style {
	warn, hasWarn := p[roleConstant]
	if !hasWarn {
		warn = p[roleInvalid]
	}
	return map[buffer.Severity]core.Style{
		buffer.SeverityError:   core.NewStyle(p[roleInvalid]).Bold(),
		buffer.SeverityWarning: core.NewStyle(warn),
		buffer.SeverityInfo:    core.NewStyle(p[roleVariable]),
		buffer.SeverityHint:    core.NewStyle(p[roleComment]),
	}
}

func newTheme(name string, bg, fg, sel, cursor, lineHi core.Color, p palette) *Theme {
	return &Theme{
		Name:             name,
		Background:       bg,
		Foreground:       fg,
		Selection:        sel,
		Cursor:           cursor,
		LineHighlight:    lineHi,
		TokenStyles:      buildFromPalette(p),
		ScopeStyles:      make(map[string]core.Style),
		DiagnosticStyles: diagnosticStylesFromPalette(p),
	}
}

// DefaultTheme returns a sensible default dark theme.
func DefaultTheme() *Theme {
	return newTheme("Default Dark",
		core.ColorFromRGB(30, 30, 30), core.ColorFromRGB(212, 212, 212),
		core.ColorFromRGB(64, 64, 128), core.ColorFromRGB(255, 255, 255),
		core.ColorFromRGB(40, 40, 40),
		palette{
			roleComment:     core.ColorFromRGB(106, 153, 85),
			roleKeyword:     core.ColorFromRGB(86, 156, 214),
			roleKeywordDecl: core.ColorFromRGB(86, 156, 214),
			roleString:      core.ColorFromRGB(206, 145, 120),
			roleEscape:      core.ColorFromRGB(215, 186, 125),
			roleNumber:      core.ColorFromRGB(181, 206, 168),
			roleFunction:    core.ColorFromRGB(220, 220, 170),
			roleBuiltinFunc: core.ColorFromRGB(220, 220, 170),
			roleType:        core.ColorFromRGB(78, 201, 176),
			roleVariable:    core.ColorFromRGB(156, 220, 254),
			roleParameter:   core.ColorFromRGB(156, 220, 254),
			roleConstant:    core.ColorFromRGB(79, 193, 255),
			roleOperator:    core.ColorFromRGB(212, 212, 212),
			rolePunctuation: core.ColorFromRGB(212, 212, 212),
			roleInvalid:     core.ColorFromRGB(244, 71, 71),
		})
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	white := core.ColorFromRGB(248, 248, 242)
	return newTheme("Monokai",
		core.ColorFromRGB(39, 40, 34), white,
		core.ColorFromRGB(73, 72, 62), core.ColorFromRGB(248, 248, 240),
		core.ColorFromRGB(62, 61, 50),
		palette{
			roleComment:     core.ColorFromRGB(117, 113, 94),
			roleKeyword:     core.ColorFromRGB(249, 38, 114),
			roleKeywordDecl: core.ColorFromRGB(102, 217, 239),
			roleString:      core.ColorFromRGB(230, 219, 116),
			roleEscape:      core.ColorFromRGB(174, 129, 255),
			roleNumber:      core.ColorFromRGB(174, 129, 255),
			roleFunction:    core.ColorFromRGB(166, 226, 46),
			roleBuiltinFunc: core.ColorFromRGB(102, 217, 239),
			roleType:        core.ColorFromRGB(102, 217, 239),
			roleVariable:    white,
			roleParameter:   core.ColorFromRGB(253, 151, 31),
			roleConstant:    core.ColorFromRGB(174, 129, 255),
			roleOperator:    core.ColorFromRGB(249, 38, 114),
			rolePunctuation: white,
			roleInvalid:     core.ColorFromRGB(249, 38, 114),
			roleInvalidBg:   core.ColorFromRGB(80, 20, 40),
		})
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	return newTheme("Dracula",
		core.ColorFromRGB(40, 42, 54), core.ColorFromRGB(248, 248, 242),
		core.ColorFromRGB(68, 71, 90), core.ColorFromRGB(248, 248, 242),
		core.ColorFromRGB(68, 71, 90),
		palette{
			roleComment:     core.ColorFromRGB(98, 114, 164),
			roleKeyword:     core.ColorFromRGB(255, 121, 198),
			roleKeywordDecl: core.ColorFromRGB(255, 121, 198),
			roleString:      core.ColorFromRGB(241, 250, 140),
			roleEscape:      core.ColorFromRGB(255, 121, 198),
			roleNumber:      core.ColorFromRGB(189, 147, 249),
			roleFunction:    core.ColorFromRGB(80, 250, 123),
			roleBuiltinFunc: core.ColorFromRGB(139, 233, 253),
			roleType:        core.ColorFromRGB(139, 233, 253),
			roleVariable:    core.ColorFromRGB(248, 248, 242),
			roleParameter:   core.ColorFromRGB(255, 184, 108),
			roleConstant:    core.ColorFromRGB(189, 147, 249),
			roleOperator:    core.ColorFromRGB(255, 121, 198),
			rolePunctuation: core.ColorFromRGB(248, 248, 242),
			roleInvalid:     core.ColorFromRGB(255, 85, 85),
		})
}

// SolarizedDarkTheme returns a Solarized Dark theme.
func SolarizedDarkTheme() *Theme {
	return newTheme("Solarized Dark",
		core.ColorFromRGB(0, 43, 54), core.ColorFromRGB(131, 148, 150),
		core.ColorFromRGB(7, 54, 66), core.ColorFromRGB(131, 148, 150),
		core.ColorFromRGB(7, 54, 66),
		palette{
			roleComment:     core.ColorFromRGB(88, 110, 117),
			roleKeyword:     core.ColorFromRGB(133, 153, 0),
			roleKeywordDecl: core.ColorFromRGB(133, 153, 0),
			roleString:      core.ColorFromRGB(42, 161, 152),
			roleEscape:      core.ColorFromRGB(203, 75, 22),
			roleNumber:      core.ColorFromRGB(211, 54, 130),
			roleFunction:    core.ColorFromRGB(38, 139, 210),
			roleBuiltinFunc: core.ColorFromRGB(38, 139, 210),
			roleType:        core.ColorFromRGB(181, 137, 0),
			roleVariable:    core.ColorFromRGB(38, 139, 210),
			roleParameter:   core.ColorFromRGB(38, 139, 210),
			roleConstant:    core.ColorFromRGB(108, 113, 196),
			roleOperator:    core.ColorFromRGB(133, 153, 0),
			rolePunctuation: core.ColorFromRGB(88, 110, 117),
			roleInvalid:     core.ColorFromRGB(220, 50, 47),
		})
}

// LightTheme returns a light theme.
func LightTheme() *Theme {
	return newTheme("Light",
		core.ColorFromRGB(255, 255, 255), core.ColorFromRGB(0, 0, 0),
		core.ColorFromRGB(173, 214, 255), core.ColorFromRGB(0, 0, 0),
		core.ColorFromRGB(245, 245, 245),
		palette{
			roleComment:     core.ColorFromRGB(0, 128, 0),
			roleKeyword:     core.ColorFromRGB(0, 0, 255),
			roleKeywordDecl: core.ColorFromRGB(0, 0, 255),
			roleString:      core.ColorFromRGB(163, 21, 21),
			roleEscape:      core.ColorFromRGB(205, 49, 49),
			roleNumber:      core.ColorFromRGB(9, 134, 88),
			roleFunction:    core.ColorFromRGB(121, 94, 38),
			roleBuiltinFunc: core.ColorFromRGB(121, 94, 38),
			roleType:        core.ColorFromRGB(38, 127, 153),
			roleVariable:    core.ColorFromRGB(0, 16, 128),
			roleParameter:   core.ColorFromRGB(0, 16, 128),
			roleConstant:    core.ColorFromRGB(0, 112, 193),
			roleOperator:    core.ColorFromRGB(0, 0, 0),
			rolePunctuation: core.ColorFromRGB(0, 0, 0),
			roleInvalid:     core.ColorFromRGB(205, 49, 49),
		})
}

// ThemeRegistry holds available themes.
type ThemeRegistry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewThemeRegistry creates a new theme registry with built-in themes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{themes: make(map[string]*Theme)}
	for _, t := range []*Theme{
		DefaultTheme(), MonokaiTheme(), DraculaTheme(),
		SolarizedDarkTheme(), LightTheme(),
	} {
		r.Register(t)
	}
	r.current = r.themes["Default Dark"]
	return r
}

// Register adds a theme to the registry.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.themes[theme.Name] = theme
}

// Get returns a theme by name.
func (r *ThemeRegistry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Current returns the current theme.
func (r *ThemeRegistry) Current() *Theme {
	return r.current
}

// SetCurrent sets the current theme by name.
func (r *ThemeRegistry) SetCurrent(name string) bool {
	t, ok := r.themes[name]
	if !ok {
		return false
	}
	r.current = t
	return true
}

// Names returns all registered theme names.
func (r *ThemeRegistry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	return names
}
