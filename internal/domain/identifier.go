package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents elimina marcas diacríticas (é -> e) para que un ID tecleado
// a mano coincida con el impreso en la etiqueta.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeID normaliza un identificador de pieza: recorta espacios,
// elimina acentos y pasa a mayúsculas. La comparación en el ledger es
// igualdad exacta sobre el resultado.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if folded, _, err := transform.String(foldAccents, id); err == nil {
		id = folded
	}
	return strings.ToUpper(id)
}
