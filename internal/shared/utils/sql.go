package utils

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escape ký tự đặc biệt của LIKE/ILIKE để search theo substring literal
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern trả về pattern %s% đã escape
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
