package main

import "github.com/martinemde/megabuilder/grammar"

// catalogueGrammar is the product catalogue grammar used when no grammar is
// given: a period, then any number of articles, each either a full article
// or an article name followed by one or more models.
func catalogueGrammar() grammar.Expr {
	return grammar.Seq(
		grammar.Sym("of"),
		grammar.Star(grammar.Alt(
			grammar.Sym("fullArticle"),
			grammar.Seq(
				grammar.Sym("article"),
				grammar.Plus(grammar.Sym("modele")),
			),
		)),
	)
}
