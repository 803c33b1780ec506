package pdxtext

// Package pdxtext reads and writes the key-value text format used by
// Paradox strategy game saves and definition files ("Clausewitz" text).
//
// - Parse tokenizes a document once; the resulting Document answers any
//   number of read-only requests: full materialization (Root, Materialize),
//   path lookups (At) and direct JSON rendering (JSON).
// - Writer emits the same grammar from discrete write calls; WriteValue
//   re-emits a materialized tree.
// - Input helpers live under source/ (compressed saves, binary headers), date
//   conversions under codec/, and the command line tool under cmd/pdxtext.
//
// Grammar ambiguities are resolved as follows:
// - A container with no entries is an empty Object.
// - Repeated keys are grouped into an Array in order of occurrence.
// - "a < 1" becomes {LESS_THAN: 1}; "color = rgb { 1 2 3 }" becomes
//   {color: {rgb: [1, 2, 3]}}.
// - Parameter definitions "[[name] ...]" become the key "[name]" ("[!name]"
//   when undefined).
// - Values that trail the last key of an object are collected under
//   "remainder".
//
// Typical usage:
//
//  doc, err := pdxtext.Parse(data, pdxtext.ParseOpt{Encoding: pdxtext.EncodingWindows1252})
//  player, ok := doc.At("/player")
//  js, err := doc.JSON(pdxtext.JSONOpt{Pretty: true})
//
//  w := pdxtext.NewBufferWriter()
//  _ = w.WriteUnquoted([]byte("player"))
//  _ = w.WriteQuoted([]byte("FRA"))
//  out, err := w.Finish()
