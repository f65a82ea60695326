// Package sink writes computed absorption results to files.
//
// # Overview
//
// A "sink" transforms a [pipeline.Result] into an output format:
//
//   - JSON: the complete result, including the per-element curve series
//   - CSV: the sampled curve, one row per wavelength
//   - XLSX: a summary sheet plus the sampled curve
//   - PDF: a printable text and table report (no plot image)
//
// # Usage
//
//	data, err := sink.Render(result, sink.FormatXLSX)
//
// or, choosing the format from the file extension:
//
//	err := sink.Export(result, "ybco.csv")
//
// Format names are lower-case and case-sensitive; see [ValidateFormat].
package sink
