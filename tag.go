package mdview

// TagKind identifies a container element. EventEnd carries only the kind.
type TagKind uint8

const (
	TagParagraph TagKind = iota
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagList
	TagItem
	TagFootnoteDefinition
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
	TagHTMLBlock
	TagMetadataBlock
	TagDefinitionList
	TagDefinitionListTitle
	TagDefinitionListDefinition
)

var tagNames = [...]string{
	TagParagraph:                "Paragraph",
	TagHeading:                  "Heading",
	TagBlockQuote:               "BlockQuote",
	TagCodeBlock:                "CodeBlock",
	TagList:                     "List",
	TagItem:                     "Item",
	TagFootnoteDefinition:       "FootnoteDefinition",
	TagTable:                    "Table",
	TagTableHead:                "TableHead",
	TagTableRow:                 "TableRow",
	TagTableCell:                "TableCell",
	TagEmphasis:                 "Emphasis",
	TagStrong:                   "Strong",
	TagStrikethrough:            "Strikethrough",
	TagLink:                     "Link",
	TagImage:                    "Image",
	TagHTMLBlock:                "HtmlBlock",
	TagMetadataBlock:            "MetadataBlock",
	TagDefinitionList:           "DefinitionList",
	TagDefinitionListTitle:      "DefinitionListTitle",
	TagDefinitionListDefinition: "DefinitionListDefinition",
}

func (k TagKind) String() string {
	if int(k) < len(tagNames) {
		return tagNames[k]
	}
	return "Unknown"
}

// Tag describes the container opened by an EventStart. Only the fields
// relevant to Kind are set.
type Tag struct {
	Kind TagKind

	Level int // Heading: 1-6.

	Fenced bool   // CodeBlock: fenced rather than indented.
	Lang   string // CodeBlock: info string of a fenced block.

	Ordered bool   // List: numbered list.
	Start   uint64 // List: first number of an ordered list.

	URL   string // Link, Image: destination.
	Title string // Link, Image: optional title.

	Label string // FootnoteDefinition: footnote label.
}
