package catalog

// Author is the optional creator reference attached to a book. Exports read
// it through the Author column extractor; a missing author renders as the
// explicitly empty cell.
type Author struct {
	Name    string
	Country string
}

// Book is one exportable catalog record.
type Book struct {
	Title     string
	Genre     string
	ISBN      string
	Price     float64
	Pages     int64
	Available bool
	Author    *Author
}

// AuthorName returns the nested author.name value, or nil when the book has
// no author attached.
func (b Book) AuthorName() any {
	if b.Author == nil {
		return nil
	}
	return b.Author.Name
}
