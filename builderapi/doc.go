// Package builderapi renders a DFA as a set of Go interfaces that form a
// fluent, type-checked builder API.
//
// Every DFA state becomes one interface. Every transition becomes a method
// named after its symbol that returns the interface of the target state, and
// final states additionally declare Build, which returns the result type. A
// chain of calls therefore compiles only if it spells a word of the grammar:
//
//	// of (fullArticle | article modele+)*
//	type CatalogueBuilder interface {
//		Of() CatalogueBuilder1
//	}
//
//	type CatalogueBuilder1 interface {
//		Build() Catalogue
//		Article() CatalogueBuilder2
//		FullArticle() CatalogueBuilder3
//	}
//
// The initial state's interface is named <Result>Builder; every other state
// appends its discovery index.
package builderapi
