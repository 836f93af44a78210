// Package codec wraps the external compression capabilities behind
// uniform compress(input, output, params) adapters: an in-process image
// codec and a subprocess audio/video encoder. Adapters report pass/fail
// with diagnostic text and make no guarantee about partial output on
// failure.
package codec
