// Package postprocess declares the boundary between the ripper core and
// external subtitle text rules. Rule loading and selection live outside
// this module; the core only ever sees a single (string) -> string
// transform.
package postprocess

// Func transforms recognized subtitle text, e.g. applying cleanup rules
// (trimming SDH markers, fixing common OCR confusions). The core applies
// it once per resolved subtitle item before writing the SRT record.
type Func func(text string) string

// Identity is the default Func: it returns its input unchanged. Used when
// no post-processing rules are configured.
func Identity(text string) string { return text }
