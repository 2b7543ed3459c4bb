package design

import (
	"bennypowers.dev/utilgen/internal/arbitrary"
	"bennypowers.dev/utilgen/internal/cssast"
)

var (
	lengthTypes = []arbitrary.DataType{arbitrary.TypeLength, arbitrary.TypePercentage, arbitrary.TypeAny}
	colorTypes  = []arbitrary.DataType{arbitrary.TypeColor, arbitrary.TypeAny}
	numberTypes = []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypeInteger, arbitrary.TypeAny}
	anyType     = []arbitrary.DataType{arbitrary.TypeAny}
)

const transitionDefault = "color, background-color, border-color, text-decoration-color, fill, stroke, opacity, box-shadow, transform, translate, scale, rotate, filter, backdrop-filter"

// registerUtilities installs the utility catalogue. Registration order is
// output order: later utilities win over earlier ones at equal specificity.
func registerUtilities(d *Design) {
	static := func(name string, pairs ...string) {
		d.addUtility(&Utility{Name: name, Kind: StaticUtility, Declarations: decls(pairs...)})
	}
	functional := func(u *Utility) {
		u.Kind = FunctionalUtility
		d.addUtility(u)
	}

	// accessibility and interactivity
	static("sr-only",
		"position", "absolute",
		"width", "1px",
		"height", "1px",
		"padding", "0",
		"margin", "-1px",
		"overflow", "hidden",
		"clip", "rect(0, 0, 0, 0)",
		"white-space", "nowrap",
		"border-width", "0",
	)
	static("not-sr-only",
		"position", "static",
		"width", "auto",
		"height", "auto",
		"padding", "0",
		"margin", "0",
		"overflow", "visible",
		"clip", "auto",
		"white-space", "normal",
	)
	static("pointer-events-none", "pointer-events", "none")
	static("pointer-events-auto", "pointer-events", "auto")
	static("visible", "visibility", "visible")
	static("invisible", "visibility", "hidden")
	static("collapse", "visibility", "collapse")

	// position and layout
	for _, p := range []string{"static", "fixed", "absolute", "relative", "sticky"} {
		static(p, "position", p)
	}
	for _, root := range []string{"inset", "inset-x", "inset-y", "start", "end", "top", "right", "bottom", "left"} {
		functional(&Utility{
			Name:       root,
			Namespaces: []string{"spacing"},
			Values:     map[string]string{"auto": "auto", "full": "100%"},
			Bare:       bareSpacing,
			Fraction:   percentFraction,
			Types:      lengthTypes,
			Negative:   true,
			Compile:    props(insetProperties[root]...),
		})
	}
	static("isolate", "isolation", "isolate")
	static("isolation-auto", "isolation", "auto")
	functional(&Utility{
		Name:       "z",
		Values:     map[string]string{"auto": "auto"},
		Namespaces: []string{"zIndex"},
		Bare:       bareInteger("{}"),
		Types:      []arbitrary.DataType{arbitrary.TypeInteger, arbitrary.TypeAny},
		Negative:   true,
		Compile:    props("z-index"),
	})
	functional(&Utility{
		Name:     "order",
		Values:   map[string]string{"first": "-9999", "last": "9999", "none": "0"},
		Bare:     bareInteger("{}"),
		Types:    []arbitrary.DataType{arbitrary.TypeInteger, arbitrary.TypeAny},
		Negative: true,
		Compile:  props("order"),
	})
	functional(&Utility{
		Name:    "col-span",
		Values:  map[string]string{"full": "1 / -1"},
		Bare:    bareInteger("span {} / span {}"),
		Types:   anyType,
		Compile: props("grid-column"),
	})
	functional(&Utility{
		Name:    "row-span",
		Values:  map[string]string{"full": "1 / -1"},
		Bare:    bareInteger("span {} / span {}"),
		Types:   anyType,
		Compile: props("grid-row"),
	})

	// box model
	for _, root := range []string{"m", "mx", "my", "ms", "me", "mt", "mr", "mb", "ml"} {
		functional(&Utility{
			Name:       root,
			Namespaces: []string{"spacing"},
			Values:     map[string]string{"auto": "auto"},
			Bare:       bareSpacing,
			Types:      lengthTypes,
			Negative:   true,
			Compile:    props(marginProperties[root]...),
		})
	}
	functional(&Utility{
		Name:    "line-clamp",
		Values:  map[string]string{"none": "none"},
		Bare:    bareInteger("{}"),
		Types:   []arbitrary.DataType{arbitrary.TypeInteger, arbitrary.TypeAny},
		Compile: lineClamp,
	})
	static("box-border", "box-sizing", "border-box")
	static("box-content", "box-sizing", "content-box")
	for _, display := range []string{"block", "inline-block", "inline", "flex", "inline-flex", "table", "inline-table", "flow-root", "grid", "inline-grid", "contents", "list-item"} {
		static(display, "display", display)
	}
	static("hidden", "display", "none")
	functional(&Utility{
		Name:       "aspect",
		Namespaces: []string{"aspectRatio"},
		Values:     map[string]string{"auto": "auto"},
		Fraction:   ratioFraction,
		Types:      []arbitrary.DataType{arbitrary.TypeRatio, arbitrary.TypeAny},
		Compile:    props("aspect-ratio"),
	})
	sizing := []struct {
		root       string
		properties []string
		namespaces []string
		values     map[string]string
	}{
		{"size", []string{"width", "height"}, []string{"spacing"}, sizeKeywords("100%")},
		{"w", []string{"width"}, []string{"spacing"}, sizeKeywords("100vw")},
		{"min-w", []string{"min-width"}, []string{"spacing"}, sizeKeywords("100vw")},
		{"max-w", []string{"max-width"}, []string{"maxWidth", "spacing"}, withNone(sizeKeywords("100vw"))},
		{"h", []string{"height"}, []string{"spacing"}, sizeKeywords("100vh")},
		{"min-h", []string{"min-height"}, []string{"spacing"}, sizeKeywords("100vh")},
		{"max-h", []string{"max-height"}, []string{"spacing"}, withNone(sizeKeywords("100vh"))},
	}
	for _, s := range sizing {
		functional(&Utility{
			Name:       s.root,
			Namespaces: s.namespaces,
			Values:     s.values,
			Bare:       bareSpacing,
			Fraction:   percentFraction,
			Types:      lengthTypes,
			Compile:    props(s.properties...),
		})
	}

	// flexbox and grid
	functional(&Utility{
		Name:     "flex",
		Values:   map[string]string{"1": "1 1 0%", "auto": "1 1 auto", "initial": "0 1 auto", "none": "none"},
		Bare:     bareInteger("{}"),
		Fraction: percentFraction,
		Types:    []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypeAny},
		Compile:  props("flex"),
	})
	functional(&Utility{
		Name:         "shrink",
		AllowDefault: true,
		Default:      "1",
		Bare:         bareInteger("{}"),
		Types:        numberTypes,
		Compile:      props("flex-shrink"),
	})
	functional(&Utility{
		Name:         "grow",
		AllowDefault: true,
		Default:      "1",
		Bare:         bareInteger("{}"),
		Types:        numberTypes,
		Compile:      props("flex-grow"),
	})
	functional(&Utility{
		Name:       "basis",
		Namespaces: []string{"spacing"},
		Values:     map[string]string{"auto": "auto", "full": "100%"},
		Bare:       bareSpacing,
		Fraction:   percentFraction,
		Types:      lengthTypes,
		Compile:    props("flex-basis"),
	})
	static("flex-row", "flex-direction", "row")
	static("flex-row-reverse", "flex-direction", "row-reverse")
	static("flex-col", "flex-direction", "column")
	static("flex-col-reverse", "flex-direction", "column-reverse")
	static("flex-wrap", "flex-wrap", "wrap")
	static("flex-nowrap", "flex-wrap", "nowrap")
	static("flex-wrap-reverse", "flex-wrap", "wrap-reverse")
	for _, root := range []string{"grid-cols", "grid-rows"} {
		property := "grid-template-columns"
		if root == "grid-rows" {
			property = "grid-template-rows"
		}
		functional(&Utility{
			Name:    root,
			Values:  map[string]string{"none": "none", "subgrid": "subgrid"},
			Bare:    bareInteger("repeat({}, minmax(0, 1fr))"),
			Types:   anyType,
			Compile: props(property),
		})
	}
	functional(&Utility{
		Name:       "columns",
		Values:     map[string]string{"auto": "auto"},
		Namespaces: []string{"maxWidth"},
		Bare:       bareInteger("{}"),
		Types:      []arbitrary.DataType{arbitrary.TypeInteger, arbitrary.TypeLength, arbitrary.TypeAny},
		Compile:    props("columns"),
	})
	for _, v := range []string{"start", "end", "center", "baseline", "stretch"} {
		static("items-"+v, "align-items", flexValue(v))
	}
	for _, v := range []string{"start", "end", "center", "between", "around", "evenly", "stretch"} {
		static("justify-"+v, "justify-content", flexValue(v))
	}
	for _, v := range []string{"auto", "start", "end", "center", "stretch", "baseline"} {
		static("self-"+v, "align-self", flexValue(v))
	}
	for _, root := range []string{"gap", "gap-x", "gap-y"} {
		functional(&Utility{
			Name:       root,
			Namespaces: []string{"spacing"},
			Bare:       bareSpacing,
			Types:      lengthTypes,
			Compile:    props(gapProperties[root]...),
		})
	}
	for _, root := range []string{"p", "px", "py", "ps", "pe", "pt", "pr", "pb", "pl"} {
		functional(&Utility{
			Name:       root,
			Namespaces: []string{"spacing"},
			Bare:       bareSpacing,
			Types:      lengthTypes,
			Compile:    props(paddingProperties[root]...),
		})
	}

	// overflow
	for _, v := range []string{"auto", "hidden", "clip", "visible", "scroll"} {
		static("overflow-"+v, "overflow", v)
		static("overflow-x-"+v, "overflow-x", v)
		static("overflow-y-"+v, "overflow-y", v)
	}
	static("truncate",
		"overflow", "hidden",
		"text-overflow", "ellipsis",
		"white-space", "nowrap",
	)

	// borders
	rounded := map[string][]string{
		"rounded":    {"border-radius"},
		"rounded-t":  {"border-top-left-radius", "border-top-right-radius"},
		"rounded-r":  {"border-top-right-radius", "border-bottom-right-radius"},
		"rounded-b":  {"border-bottom-right-radius", "border-bottom-left-radius"},
		"rounded-l":  {"border-top-left-radius", "border-bottom-left-radius"},
		"rounded-tl": {"border-top-left-radius"},
		"rounded-tr": {"border-top-right-radius"},
		"rounded-br": {"border-bottom-right-radius"},
		"rounded-bl": {"border-bottom-left-radius"},
	}
	for _, root := range []string{"rounded", "rounded-t", "rounded-r", "rounded-b", "rounded-l", "rounded-tl", "rounded-tr", "rounded-br", "rounded-bl"} {
		functional(&Utility{
			Name:         root,
			Namespaces:   []string{"borderRadius"},
			AllowDefault: true,
			Types:        lengthTypes,
			Compile:      props(rounded[root]...),
		})
	}
	for _, side := range []string{"", "-x", "-y", "-t", "-r", "-b", "-l"} {
		functional(&Utility{
			Name:         "border" + side,
			Namespaces:   []string{"borderWidth"},
			AllowDefault: true,
			Bare:         bareInteger("{}px"),
			Types:        []arbitrary.DataType{arbitrary.TypeLineWidth, arbitrary.TypeLength},
			Compile:      suffixed(borderSides[side], "width"),
		})
		functional(&Utility{
			Name:       "border" + side,
			Namespaces: []string{"colors"},
			Types:      colorTypes,
			Modifier:   OpacityModifier,
			Compile:    suffixed(borderSides[side], "color"),
		})
	}
	for _, style := range []string{"solid", "dashed", "dotted", "double", "hidden", "none"} {
		static("border-"+style, "border-style", style)
	}

	// backgrounds
	functional(&Utility{
		Name:       "bg",
		Namespaces: []string{"colors"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("background-color"),
	})
	functional(&Utility{
		Name:    "bg",
		Values:  map[string]string{"none": "none"},
		Types:   []arbitrary.DataType{arbitrary.TypeURL, arbitrary.TypeImage},
		Compile: props("background-image"),
	})
	for _, v := range []string{"auto", "cover", "contain"} {
		static("bg-"+v, "background-size", v)
	}
	static("bg-fixed", "background-attachment", "fixed")
	static("bg-no-repeat", "background-repeat", "no-repeat")
	static("bg-center", "background-position", "center")
	functional(&Utility{
		Name:       "fill",
		Namespaces: []string{"colors"},
		Values:     map[string]string{"none": "none"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("fill"),
	})
	functional(&Utility{
		Name:       "stroke",
		Namespaces: []string{"colors"},
		Values:     map[string]string{"none": "none"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("stroke"),
	})
	functional(&Utility{
		Name:    "stroke",
		Bare:    bareInteger("{}"),
		Types:   []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypeLength, arbitrary.TypePercentage},
		Compile: props("stroke-width"),
	})
	static("object-contain", "object-fit", "contain")
	static("object-cover", "object-fit", "cover")
	static("object-fill", "object-fit", "fill")
	static("object-none", "object-fit", "none")
	static("object-scale-down", "object-fit", "scale-down")

	// typography
	for _, align := range []string{"left", "center", "right", "justify", "start", "end"} {
		static("text-"+align, "text-align", align)
	}
	functional(&Utility{
		Name:       "font",
		Namespaces: []string{"fontWeight"},
		Bare:       bareInteger("{}"),
		Types:      []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypeInteger},
		Compile:    props("font-weight"),
	})
	functional(&Utility{
		Name:       "font",
		Namespaces: []string{"fontFamily"},
		Types:      []arbitrary.DataType{arbitrary.TypeFamilyName, arbitrary.TypeGenericName, arbitrary.TypeAny},
		Compile:    props("font-family"),
	})
	functional(&Utility{
		Name:       "text",
		Namespaces: []string{"fontSize"},
		Types: []arbitrary.DataType{
			arbitrary.TypeAbsoluteSize, arbitrary.TypeRelativeSize,
			arbitrary.TypeLength, arbitrary.TypePercentage,
		},
		Modifier: LineHeightModifier,
		Compile:  fontSize,
	})
	functional(&Utility{
		Name:       "text",
		Namespaces: []string{"colors"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("color"),
	})
	functional(&Utility{
		Name:       "leading",
		Namespaces: []string{"lineHeight"},
		Bare:       bareSpacing,
		Types:      []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypeLength, arbitrary.TypePercentage, arbitrary.TypeAny},
		Compile:    props("line-height"),
	})
	functional(&Utility{
		Name:       "tracking",
		Namespaces: []string{"letterSpacing"},
		Types:      []arbitrary.DataType{arbitrary.TypeLength, arbitrary.TypeAny},
		Negative:   true,
		Compile:    props("letter-spacing"),
	})
	static("uppercase", "text-transform", "uppercase")
	static("lowercase", "text-transform", "lowercase")
	static("capitalize", "text-transform", "capitalize")
	static("normal-case", "text-transform", "none")
	static("italic", "font-style", "italic")
	static("not-italic", "font-style", "normal")
	static("underline", "text-decoration-line", "underline")
	static("overline", "text-decoration-line", "overline")
	static("line-through", "text-decoration-line", "line-through")
	static("no-underline", "text-decoration-line", "none")
	functional(&Utility{
		Name:       "decoration",
		Namespaces: []string{"colors"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("text-decoration-color"),
	})
	functional(&Utility{
		Name:    "decoration",
		Values:  map[string]string{"auto": "auto", "from-font": "from-font"},
		Bare:    bareInteger("{}px"),
		Types:   []arbitrary.DataType{arbitrary.TypeLength, arbitrary.TypePercentage},
		Compile: props("text-decoration-thickness"),
	})
	for _, ws := range []string{"normal", "nowrap", "pre", "pre-line", "pre-wrap", "break-spaces"} {
		static("whitespace-"+ws, "white-space", ws)
	}
	static("break-normal", "overflow-wrap", "normal", "word-break", "normal")
	static("break-words", "overflow-wrap", "break-word")
	static("break-all", "word-break", "break-all")
	static("antialiased",
		"-webkit-font-smoothing", "antialiased",
		"-moz-osx-font-smoothing", "grayscale",
	)
	functional(&Utility{
		Name:    "content",
		Values:  map[string]string{"none": "none"},
		Types:   anyType,
		Compile: props("content"),
	})

	// effects
	functional(&Utility{
		Name:       "opacity",
		Namespaces: []string{"opacity"},
		Bare:       barePercent,
		Types:      []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypePercentage, arbitrary.TypeAny},
		Compile:    props("opacity"),
	})
	functional(&Utility{
		Name:         "shadow",
		Namespaces:   []string{"boxShadow"},
		AllowDefault: true,
		Types:        []arbitrary.DataType{arbitrary.TypeShadow, arbitrary.TypeAny},
		Compile:      props("box-shadow"),
	})
	functional(&Utility{
		Name:       "accent",
		Namespaces: []string{"colors"},
		Values:     map[string]string{"auto": "auto"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("accent-color"),
	})
	functional(&Utility{
		Name:       "caret",
		Namespaces: []string{"colors"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("caret-color"),
	})
	functional(&Utility{
		Name:       "outline",
		Namespaces: []string{"colors"},
		Types:      colorTypes,
		Modifier:   OpacityModifier,
		Compile:    props("outline-color"),
	})
	functional(&Utility{
		Name:         "outline",
		AllowDefault: true,
		Default:      "1px",
		Bare:         bareInteger("{}px"),
		Types:        []arbitrary.DataType{arbitrary.TypeLength, arbitrary.TypeNumber},
		Compile:      outlineWidth,
	})
	static("outline-none", "outline", "2px solid transparent", "outline-offset", "2px")
	functional(&Utility{
		Name:         "blur",
		Namespaces:   []string{"blur"},
		Values:       map[string]string{"none": ""},
		AllowDefault: true,
		Types:        []arbitrary.DataType{arbitrary.TypeLength, arbitrary.TypeAny},
		Compile:      blur,
	})

	// transforms
	functional(&Utility{
		Name:     "rotate",
		Bare:     bareInteger("{}deg"),
		Types:    []arbitrary.DataType{arbitrary.TypeAngle, arbitrary.TypeAny},
		Negative: true,
		Compile:  props("rotate"),
	})
	functional(&Utility{
		Name:     "scale",
		Bare:     bareInteger("{}%"),
		Types:    []arbitrary.DataType{arbitrary.TypeNumber, arbitrary.TypePercentage, arbitrary.TypeAny},
		Negative: true,
		Compile:  props("scale"),
	})
	functional(&Utility{
		Name:       "translate-x",
		Namespaces: []string{"spacing"},
		Values:     map[string]string{"full": "100%"},
		Bare:       bareSpacing,
		Fraction:   percentFraction,
		Types:      lengthTypes,
		Negative:   true,
		Compile:    wrap("transform", "translateX(%s)"),
	})
	functional(&Utility{
		Name:       "translate-y",
		Namespaces: []string{"spacing"},
		Values:     map[string]string{"full": "100%"},
		Bare:       bareSpacing,
		Fraction:   percentFraction,
		Types:      lengthTypes,
		Negative:   true,
		Compile:    wrap("transform", "translateY(%s)"),
	})

	// interactivity
	functional(&Utility{
		Name: "cursor",
		Values: map[string]string{
			"auto": "auto", "default": "default", "pointer": "pointer", "wait": "wait",
			"text": "text", "move": "move", "help": "help", "not-allowed": "not-allowed",
			"none": "none", "progress": "progress", "grab": "grab", "grabbing": "grabbing",
		},
		Types:   anyType,
		Compile: props("cursor"),
	})
	for _, v := range []string{"none", "text", "all", "auto"} {
		static("select-"+v, "user-select", v)
	}

	// transitions
	functional(&Utility{
		Name: "transition",
		Values: map[string]string{
			"all":       "all",
			"colors":    "color, background-color, border-color, text-decoration-color, fill, stroke",
			"opacity":   "opacity",
			"shadow":    "box-shadow",
			"transform": "transform, translate, scale, rotate",
		},
		AllowDefault: true,
		Default:      transitionDefault,
		Types:        anyType,
		Compile:      transition,
	})
	static("transition-none", "transition-property", "none")
	functional(&Utility{
		Name:         "duration",
		Namespaces:   []string{"transitionDuration"},
		AllowDefault: true,
		Bare:         bareInteger("{}ms"),
		Types:        []arbitrary.DataType{arbitrary.TypeTime, arbitrary.TypeAny},
		Compile:      props("transition-duration"),
	})
	functional(&Utility{
		Name:         "ease",
		Namespaces:   []string{"transitionTimingFunction"},
		AllowDefault: true,
		Types:        anyType,
		Compile:      props("transition-timing-function"),
	})
	functional(&Utility{
		Name:    "delay",
		Bare:    bareInteger("{}ms"),
		Types:   []arbitrary.DataType{arbitrary.TypeTime, arbitrary.TypeAny},
		Compile: props("transition-delay"),
	})
}

var insetProperties = map[string][]string{
	"inset":   {"inset"},
	"inset-x": {"left", "right"},
	"inset-y": {"top", "bottom"},
	"start":   {"inset-inline-start"},
	"end":     {"inset-inline-end"},
	"top":     {"top"},
	"right":   {"right"},
	"bottom":  {"bottom"},
	"left":    {"left"},
}

var marginProperties = map[string][]string{
	"m":  {"margin"},
	"mx": {"margin-left", "margin-right"},
	"my": {"margin-top", "margin-bottom"},
	"ms": {"margin-inline-start"},
	"me": {"margin-inline-end"},
	"mt": {"margin-top"},
	"mr": {"margin-right"},
	"mb": {"margin-bottom"},
	"ml": {"margin-left"},
}

var paddingProperties = map[string][]string{
	"p":  {"padding"},
	"px": {"padding-left", "padding-right"},
	"py": {"padding-top", "padding-bottom"},
	"ps": {"padding-inline-start"},
	"pe": {"padding-inline-end"},
	"pt": {"padding-top"},
	"pr": {"padding-right"},
	"pb": {"padding-bottom"},
	"pl": {"padding-left"},
}

var gapProperties = map[string][]string{
	"gap":   {"gap"},
	"gap-x": {"column-gap"},
	"gap-y": {"row-gap"},
}

// borderSides maps a border utility suffix to property prefixes.
var borderSides = map[string][]string{
	"":   {"border"},
	"-x": {"border-left", "border-right"},
	"-y": {"border-top", "border-bottom"},
	"-t": {"border-top"},
	"-r": {"border-right"},
	"-b": {"border-bottom"},
	"-l": {"border-left"},
}

func sizeKeywords(screen string) map[string]string {
	return map[string]string{
		"auto":   "auto",
		"full":   "100%",
		"screen": screen,
		"min":    "min-content",
		"max":    "max-content",
		"fit":    "fit-content",
	}
}

func withNone(values map[string]string) map[string]string {
	values["none"] = "none"
	return values
}

func flexValue(v string) string {
	switch v {
	case "start":
		return "flex-start"
	case "end":
		return "flex-end"
	case "between":
		return "space-between"
	case "around":
		return "space-around"
	case "evenly":
		return "space-evenly"
	}
	return v
}

// suffixed compiles into prefix-suffix properties, like border-top-color.
func suffixed(prefixes []string, suffix string) CompileFunc {
	properties := make([]string, len(prefixes))
	for i, p := range prefixes {
		properties[i] = p + "-" + suffix
	}
	return props(properties...)
}

func fontSize(v Value) []*cssast.Declaration {
	out := []*cssast.Declaration{cssast.Decl("font-size", v.CSS)}
	switch {
	case v.Modifier != "":
		out = append(out, cssast.Decl("line-height", v.Modifier))
	case v.Key != "" && v.Theme != nil:
		if lh, ok := v.Theme.Lookup("fontSizeLineHeight", v.Key); ok {
			out = append(out, cssast.Decl("line-height", lh))
		}
	}
	return out
}

func lineClamp(v Value) []*cssast.Declaration {
	if v.CSS == "none" {
		return decls(
			"overflow", "visible",
			"display", "block",
			"-webkit-box-orient", "horizontal",
			"-webkit-line-clamp", "unset",
		)
	}
	return decls(
		"overflow", "hidden",
		"display", "-webkit-box",
		"-webkit-box-orient", "vertical",
		"-webkit-line-clamp", v.CSS,
	)
}

func outlineWidth(v Value) []*cssast.Declaration {
	return decls("outline-style", "solid", "outline-width", v.CSS)
}

func blur(v Value) []*cssast.Declaration {
	if v.CSS == "" {
		return decls("filter", "none")
	}
	return decls("filter", "blur("+v.CSS+")")
}

func transition(v Value) []*cssast.Declaration {
	out := decls("transition-property", v.CSS)
	if v.CSS == "none" {
		return out
	}
	ease, duration := "cubic-bezier(0.4, 0, 0.2, 1)", "150ms"
	if v.Theme != nil {
		if e, ok := v.Theme.Lookup("transitionTimingFunction", ""); ok {
			ease = e
		}
		if d, ok := v.Theme.Lookup("transitionDuration", ""); ok {
			duration = d
		}
	}
	return append(out,
		cssast.Decl("transition-timing-function", ease),
		cssast.Decl("transition-duration", duration),
	)
}
