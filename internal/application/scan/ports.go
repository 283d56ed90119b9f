// Package scan define el puerto de decodificación de etiquetas. La
// decodificación de imágenes (QR/código de barras) es una capacidad
// externa consumida como función opaca: imagen -> identificador o error.
// La entrada manual del ID sigue siendo el camino principal.
package scan

import "context"

// Decoder decodifica la imagen de una etiqueta al identificador impreso.
type Decoder interface {
	Decode(ctx context.Context, image []byte) (string, error)
}

// DecoderFunc adaptador de función a Decoder.
type DecoderFunc func(ctx context.Context, image []byte) (string, error)

// Decode implementa Decoder.
func (f DecoderFunc) Decode(ctx context.Context, image []byte) (string, error) {
	return f(ctx, image)
}
