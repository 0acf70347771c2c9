package model

// Languages is the fixed list of translation targets.
var Languages = []string{
	"English",
	"Spanish",
	"French",
	"German",
	"Italian",
	"Portuguese",
	"Russian",
	"Japanese",
	"Chinese",
	"Arabic",
	"Hindi",
	"Persian",
}
