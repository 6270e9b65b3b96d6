// Package book holds the option vocabularies of Calaméo publications: the
// category and format codes accepted by publish and updateBook, and the
// numeric modes that control comments, downloads, printing, and viewing.
//
// Every vocabulary type has a Label method returning the human readable
// name. Values are sent to the API as their code, so the types deliberately
// do not implement fmt.Stringer.
//
//	fields := calameo.Fields{
//		"category": book.CategoryBusiness,
//		"format":   book.FormatReports,
//		"comment":  book.CommentsModerate,
//	}
package book
