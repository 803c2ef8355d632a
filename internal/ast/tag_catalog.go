package ast

import (
	"slices"
	"strings"
)

// TagType identifies a recognized element. TagUnknown covers custom elements
// (web components, typos, other vocabularies); their name lives on the node.
type TagType uint8

// TagFlag captures parsing rules attached to an element.
type TagFlag uint8

const (
	TagFlagNone TagFlag = 0
	// TagFlagVoid elements never have children and close at '>'.
	TagFlagVoid TagFlag = 1 << iota
	// TagFlagRawText elements keep their body as text up to the matching end tag.
	TagFlagRawText
)

const (
	TagUnknown TagType = iota
	TagA
	TagAbbr
	TagAddress
	TagArea
	TagArticle
	TagAside
	TagAudio
	TagB
	TagBase
	TagBdi
	TagBdo
	TagBlockquote
	TagBody
	TagBr
	TagButton
	TagCanvas
	TagCaption
	TagCite
	TagCode
	TagCol
	TagColgroup
	TagData
	TagDatalist
	TagDd
	TagDel
	TagDetails
	TagDfn
	TagDialog
	TagDiv
	TagDl
	TagDt
	TagEm
	TagEmbed
	TagFieldset
	TagFigcaption
	TagFigure
	TagFooter
	TagForm
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagHead
	TagHeader
	TagHr
	TagHtml
	TagI
	TagIframe
	TagImg
	TagInput
	TagIns
	TagKbd
	TagKeygen
	TagLabel
	TagLegend
	TagLi
	TagLink
	TagMain
	TagMap
	TagMark
	TagMenu
	TagMenuitem
	TagMeta
	TagMeter
	TagNav
	TagNoscript
	TagObject
	TagOl
	TagOptgroup
	TagOption
	TagOutput
	TagP
	TagParam
	TagPre
	TagProgress
	TagQ
	TagRp
	TagRt
	TagRuby
	TagS
	TagSamp
	TagScript
	TagSection
	TagSelect
	TagSmall
	TagSource
	TagSpan
	TagStrong
	TagStyle
	TagSub
	TagSummary
	TagSup
	TagTable
	TagTbody
	TagTd
	TagTextarea
	TagTfoot
	TagTh
	TagThead
	TagTime
	TagTitle
	TagTr
	TagTrack
	TagU
	TagUl
	TagVar
	TagVideo
	TagWbr

	numTags
)

// TagSpec describes a recognized element.
type TagSpec struct {
	Name  string
	Type  TagType
	Flags TagFlag
}

func (spec TagSpec) HasFlag(flag TagFlag) bool {
	return spec.Flags&flag != 0
}

var tagTable = [numTags]TagSpec{
	TagUnknown:    {Name: "", Type: TagUnknown},
	TagA:          {Name: "a", Type: TagA},
	TagAbbr:       {Name: "abbr", Type: TagAbbr},
	TagAddress:    {Name: "address", Type: TagAddress},
	TagArea:       {Name: "area", Type: TagArea, Flags: TagFlagVoid},
	TagArticle:    {Name: "article", Type: TagArticle},
	TagAside:      {Name: "aside", Type: TagAside},
	TagAudio:      {Name: "audio", Type: TagAudio},
	TagB:          {Name: "b", Type: TagB},
	TagBase:       {Name: "base", Type: TagBase, Flags: TagFlagVoid},
	TagBdi:        {Name: "bdi", Type: TagBdi},
	TagBdo:        {Name: "bdo", Type: TagBdo},
	TagBlockquote: {Name: "blockquote", Type: TagBlockquote},
	TagBody:       {Name: "body", Type: TagBody},
	TagBr:         {Name: "br", Type: TagBr, Flags: TagFlagVoid},
	TagButton:     {Name: "button", Type: TagButton},
	TagCanvas:     {Name: "canvas", Type: TagCanvas},
	TagCaption:    {Name: "caption", Type: TagCaption},
	TagCite:       {Name: "cite", Type: TagCite},
	TagCode:       {Name: "code", Type: TagCode},
	TagCol:        {Name: "col", Type: TagCol, Flags: TagFlagVoid},
	TagColgroup:   {Name: "colgroup", Type: TagColgroup},
	TagData:       {Name: "data", Type: TagData},
	TagDatalist:   {Name: "datalist", Type: TagDatalist},
	TagDd:         {Name: "dd", Type: TagDd},
	TagDel:        {Name: "del", Type: TagDel},
	TagDetails:    {Name: "details", Type: TagDetails},
	TagDfn:        {Name: "dfn", Type: TagDfn},
	TagDialog:     {Name: "dialog", Type: TagDialog},
	TagDiv:        {Name: "div", Type: TagDiv},
	TagDl:         {Name: "dl", Type: TagDl},
	TagDt:         {Name: "dt", Type: TagDt},
	TagEm:         {Name: "em", Type: TagEm},
	TagEmbed:      {Name: "embed", Type: TagEmbed, Flags: TagFlagVoid},
	TagFieldset:   {Name: "fieldset", Type: TagFieldset},
	TagFigcaption: {Name: "figcaption", Type: TagFigcaption},
	TagFigure:     {Name: "figure", Type: TagFigure},
	TagFooter:     {Name: "footer", Type: TagFooter},
	TagForm:       {Name: "form", Type: TagForm},
	TagH1:         {Name: "h1", Type: TagH1},
	TagH2:         {Name: "h2", Type: TagH2},
	TagH3:         {Name: "h3", Type: TagH3},
	TagH4:         {Name: "h4", Type: TagH4},
	TagH5:         {Name: "h5", Type: TagH5},
	TagH6:         {Name: "h6", Type: TagH6},
	TagHead:       {Name: "head", Type: TagHead},
	TagHeader:     {Name: "header", Type: TagHeader},
	TagHr:         {Name: "hr", Type: TagHr, Flags: TagFlagVoid},
	TagHtml:       {Name: "html", Type: TagHtml},
	TagI:          {Name: "i", Type: TagI},
	TagIframe:     {Name: "iframe", Type: TagIframe},
	TagImg:        {Name: "img", Type: TagImg, Flags: TagFlagVoid},
	TagInput:      {Name: "input", Type: TagInput, Flags: TagFlagVoid},
	TagIns:        {Name: "ins", Type: TagIns},
	TagKbd:        {Name: "kbd", Type: TagKbd},
	TagKeygen:     {Name: "keygen", Type: TagKeygen, Flags: TagFlagVoid},
	TagLabel:      {Name: "label", Type: TagLabel},
	TagLegend:     {Name: "legend", Type: TagLegend},
	TagLi:         {Name: "li", Type: TagLi},
	TagLink:       {Name: "link", Type: TagLink, Flags: TagFlagVoid},
	TagMain:       {Name: "main", Type: TagMain},
	TagMap:        {Name: "map", Type: TagMap},
	TagMark:       {Name: "mark", Type: TagMark},
	TagMenu:       {Name: "menu", Type: TagMenu},
	TagMenuitem:   {Name: "menuitem", Type: TagMenuitem},
	TagMeta:       {Name: "meta", Type: TagMeta, Flags: TagFlagVoid},
	TagMeter:      {Name: "meter", Type: TagMeter},
	TagNav:        {Name: "nav", Type: TagNav},
	TagNoscript:   {Name: "noscript", Type: TagNoscript},
	TagObject:     {Name: "object", Type: TagObject},
	TagOl:         {Name: "ol", Type: TagOl},
	TagOptgroup:   {Name: "optgroup", Type: TagOptgroup},
	TagOption:     {Name: "option", Type: TagOption},
	TagOutput:     {Name: "output", Type: TagOutput},
	TagP:          {Name: "p", Type: TagP},
	TagParam:      {Name: "param", Type: TagParam, Flags: TagFlagVoid},
	TagPre:        {Name: "pre", Type: TagPre},
	TagProgress:   {Name: "progress", Type: TagProgress},
	TagQ:          {Name: "q", Type: TagQ},
	TagRp:         {Name: "rp", Type: TagRp},
	TagRt:         {Name: "rt", Type: TagRt},
	TagRuby:       {Name: "ruby", Type: TagRuby},
	TagS:          {Name: "s", Type: TagS},
	TagSamp:       {Name: "samp", Type: TagSamp},
	TagScript:     {Name: "script", Type: TagScript, Flags: TagFlagRawText},
	TagSection:    {Name: "section", Type: TagSection},
	TagSelect:     {Name: "select", Type: TagSelect},
	TagSmall:      {Name: "small", Type: TagSmall},
	TagSource:     {Name: "source", Type: TagSource, Flags: TagFlagVoid},
	TagSpan:       {Name: "span", Type: TagSpan},
	TagStrong:     {Name: "strong", Type: TagStrong},
	TagStyle:      {Name: "style", Type: TagStyle, Flags: TagFlagRawText},
	TagSub:        {Name: "sub", Type: TagSub},
	TagSummary:    {Name: "summary", Type: TagSummary},
	TagSup:        {Name: "sup", Type: TagSup},
	TagTable:      {Name: "table", Type: TagTable},
	TagTbody:      {Name: "tbody", Type: TagTbody},
	TagTd:         {Name: "td", Type: TagTd},
	TagTextarea:   {Name: "textarea", Type: TagTextarea},
	TagTfoot:      {Name: "tfoot", Type: TagTfoot},
	TagTh:         {Name: "th", Type: TagTh},
	TagThead:      {Name: "thead", Type: TagThead},
	TagTime:       {Name: "time", Type: TagTime},
	TagTitle:      {Name: "title", Type: TagTitle},
	TagTr:         {Name: "tr", Type: TagTr},
	TagTrack:      {Name: "track", Type: TagTrack, Flags: TagFlagVoid},
	TagU:          {Name: "u", Type: TagU},
	TagUl:         {Name: "ul", Type: TagUl},
	TagVar:        {Name: "var", Type: TagVar},
	TagVideo:      {Name: "video", Type: TagVideo},
	TagWbr:        {Name: "wbr", Type: TagWbr, Flags: TagFlagVoid},
}

var tagRegistry = func() map[string]TagType {
	m := make(map[string]TagType, len(tagTable))
	for _, spec := range tagTable[1:] {
		m[spec.Name] = spec.Type
	}
	return m
}()

// LookupTag classifies an element name (case-insensitive).
func LookupTag(name string) (TagType, bool) {
	if name == "" {
		return TagUnknown, false
	}
	t, ok := tagRegistry[strings.ToLower(name)]
	return t, ok
}

// Spec returns the catalog entry; TagUnknown and out-of-range values yield the empty spec.
func (t TagType) Spec() TagSpec {
	if t >= numTags {
		return TagSpec{}
	}
	return tagTable[t]
}

func (t TagType) String() string {
	if t == TagUnknown || t >= numTags {
		return "unknown"
	}
	return tagTable[t].Name
}

func (t TagType) IsVoid() bool    { return t.Spec().HasFlag(TagFlagVoid) }
func (t TagType) IsRawText() bool { return t.Spec().HasFlag(TagFlagRawText) }

// TagSpecs returns all recognized elements sorted by name.
func TagSpecs() []TagSpec {
	out := slices.Clone(tagTable[1:])
	slices.SortFunc(out, func(a, b TagSpec) int { return strings.Compare(a.Name, b.Name) })
	return out
}
