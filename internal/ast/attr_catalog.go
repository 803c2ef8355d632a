package ast

import (
	"slices"
	"strings"
)

// AttrFlag captures attribute rules beyond plain membership.
type AttrFlag uint8

const (
	AttrFlagNone AttrFlag = 0
	// AttrFlagBoolean attributes are meaningful without a value (`<input disabled>`).
	AttrFlagBoolean AttrFlag = 1 << iota
	// AttrFlagWildcard marks the literal "data-*" entry. It documents the family
	// but never matches a concrete name: `data-foo` is still a custom attribute.
	AttrFlagWildcard
)

// AttrSpec describes a recognized attribute name.
type AttrSpec struct {
	Name  string
	Flags AttrFlag
}

// HasFlag reports whether the spec contains the given flag.
func (spec AttrSpec) HasFlag(flag AttrFlag) bool {
	return spec.Flags&flag != 0
}

var attrRegistry = map[string]AttrSpec{
	"accept":          {Name: "accept"},
	"accept-charset":  {Name: "accept-charset"},
	"accesskey":       {Name: "accesskey"},
	"action":          {Name: "action"},
	"align":           {Name: "align"},
	"alt":             {Name: "alt"},
	"async":           {Name: "async", Flags: AttrFlagBoolean},
	"autocomplete":    {Name: "autocomplete"},
	"autofocus":       {Name: "autofocus", Flags: AttrFlagBoolean},
	"autoplay":        {Name: "autoplay", Flags: AttrFlagBoolean},
	"bgcolor":         {Name: "bgcolor"},
	"border":          {Name: "border"},
	"challenge":       {Name: "challenge"},
	"charset":         {Name: "charset"},
	"checked":         {Name: "checked", Flags: AttrFlagBoolean},
	"cite":            {Name: "cite"},
	"class":           {Name: "class"},
	"code":            {Name: "code"},
	"codebase":        {Name: "codebase"},
	"color":           {Name: "color"},
	"cols":            {Name: "cols"},
	"colspan":         {Name: "colspan"},
	"content":         {Name: "content"},
	"contenteditable": {Name: "contenteditable"},
	"contextmenu":     {Name: "contextmenu"},
	"controls":        {Name: "controls", Flags: AttrFlagBoolean},
	"coords":          {Name: "coords"},
	"data":            {Name: "data"},
	"data-*":          {Name: "data-*", Flags: AttrFlagWildcard},
	"datetime":        {Name: "datetime"},
	"default":         {Name: "default", Flags: AttrFlagBoolean},
	"defer":           {Name: "defer", Flags: AttrFlagBoolean},
	"dir":             {Name: "dir"},
	"dirname":         {Name: "dirname"},
	"disabled":        {Name: "disabled", Flags: AttrFlagBoolean},
	"download":        {Name: "download"},
	"draggable":       {Name: "draggable"},
	"enctype":         {Name: "enctype"},
	"for":             {Name: "for"},
	"form":            {Name: "form"},
	"formaction":      {Name: "formaction"},
	"headers":         {Name: "headers"},
	"height":          {Name: "height"},
	"hidden":          {Name: "hidden", Flags: AttrFlagBoolean},
	"high":            {Name: "high"},
	"href":            {Name: "href"},
	"hreflang":        {Name: "hreflang"},
	"http-equiv":      {Name: "http-equiv"},
	"icon":            {Name: "icon"},
	"id":              {Name: "id"},
	"ismap":           {Name: "ismap", Flags: AttrFlagBoolean},
	"keytype":         {Name: "keytype"},
	"kind":            {Name: "kind"},
	"label":           {Name: "label"},
	"lang":            {Name: "lang"},
	"list":            {Name: "list"},
	"loop":            {Name: "loop", Flags: AttrFlagBoolean},
	"low":             {Name: "low"},
	"manifest":        {Name: "manifest"},
	"max":             {Name: "max"},
	"maxlength":       {Name: "maxlength"},
	"media":           {Name: "media"},
	"method":          {Name: "method"},
	"min":             {Name: "min"},
	"multiple":        {Name: "multiple", Flags: AttrFlagBoolean},
	"muted":           {Name: "muted", Flags: AttrFlagBoolean},
	"name":            {Name: "name"},
	"novalidate":      {Name: "novalidate", Flags: AttrFlagBoolean},
	"open":            {Name: "open", Flags: AttrFlagBoolean},
	"optimum":         {Name: "optimum"},
	"pattern":         {Name: "pattern"},
	"ping":            {Name: "ping"},
	"placeholder":     {Name: "placeholder"},
	"poster":          {Name: "poster"},
	"preload":         {Name: "preload"},
	"radiogroup":      {Name: "radiogroup"},
	"readonly":        {Name: "readonly", Flags: AttrFlagBoolean},
	"rel":             {Name: "rel"},
	"required":        {Name: "required", Flags: AttrFlagBoolean},
	"reversed":        {Name: "reversed", Flags: AttrFlagBoolean},
	"rows":            {Name: "rows"},
	"rowspan":         {Name: "rowspan"},
	"sandbox":         {Name: "sandbox"},
	"scope":           {Name: "scope"},
	"scoped":          {Name: "scoped", Flags: AttrFlagBoolean},
	"seamless":        {Name: "seamless", Flags: AttrFlagBoolean},
	"selected":        {Name: "selected", Flags: AttrFlagBoolean},
	"shape":           {Name: "shape"},
	"size":            {Name: "size"},
	"sizes":           {Name: "sizes"},
	"span":            {Name: "span"},
	"spellcheck":      {Name: "spellcheck"},
	"src":             {Name: "src"},
	"srcdoc":          {Name: "srcdoc"},
	"srclang":         {Name: "srclang"},
	"srcset":          {Name: "srcset"},
	"start":           {Name: "start"},
	"step":            {Name: "step"},
	"style":           {Name: "style"},
	"subject":         {Name: "subject"},
	"summary":         {Name: "summary"},
	"tabindex":        {Name: "tabindex"},
	"target":          {Name: "target"},
	"title":           {Name: "title"},
	"type":            {Name: "type"},
	"usemap":          {Name: "usemap"},
	"value":           {Name: "value"},
}

// LookupAttr returns metadata for the given attribute name (case-insensitive).
// Unknown names are not errors: the parser keeps them as custom attributes.
func LookupAttr(name string) (AttrSpec, bool) {
	if name == "" {
		return AttrSpec{}, false
	}
	spec, ok := attrRegistry[strings.ToLower(name)]
	if !ok || spec.HasFlag(AttrFlagWildcard) && name != spec.Name {
		return AttrSpec{}, false
	}
	return spec, true
}

// IsDataAttr reports whether name belongs to the data-* family.
func IsDataAttr(name string) bool {
	return len(name) > len("data-") && strings.HasPrefix(strings.ToLower(name), "data-")
}

// AttrSpecs returns a stable slice of all registered attribute specifications sorted by name.
func AttrSpecs() []AttrSpec {
	names := make([]string, 0, len(attrRegistry))
	for name := range attrRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	result := make([]AttrSpec, 0, len(names))
	for _, name := range names {
		result = append(result, attrRegistry[name])
	}
	return result
}
