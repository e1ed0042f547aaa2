package mockstore

import "bookmanager/internal/entity"

// catalog holds the metadata the mock backend "resolves" for known ISBNs.
// Anything not listed here gets a synthesized stub entry.
var catalog = map[string]entity.Book{
	"9780134190440": {
		ISBN:          "9780134190440",
		Title:         "The Go Programming Language",
		Authors:       []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
		Publisher:     "Addison-Wesley",
		PublishedDate: "2015-10-26",
		Description:   "The authoritative resource to writing clear and idiomatic Go.",
		CoverURL:      "https://covers.example.com/9780134190440.jpg",
	},
	"9781491941959": {
		ISBN:          "9781491941959",
		Title:         "Introducing Go",
		Authors:       []string{"Caleb Doxsey"},
		Publisher:     "O'Reilly Media",
		PublishedDate: "2016-01-22",
		Description:   "A short, focused introduction to the Go language.",
		CoverURL:      "https://covers.example.com/9781491941959.jpg",
	},
	"9783836290494": {
		ISBN:          "9783836290494",
		Title:         "Angular - Das große Praxisbuch",
		Authors:       []string{"Ferdinand Malcher", "Danny Koppenhagen", "Johannes Hoppe"},
		Publisher:     "Rheinwerk Computing",
		PublishedDate: "2023-05-04",
		Description:   "Grundlagen, fortgeschrittene Themen und Best Practices.",
		CoverURL:      "https://covers.example.com/9783836290494.jpg",
	},
}
