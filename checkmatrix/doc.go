// Package checkmatrix builds weighted matching graphs from binary parity
// check matrices.
//
// Rows are checks (detectors), columns are independent error mechanisms.
// A column touching two checks becomes an edge between them; a column
// touching one check becomes that node's boundary edge. Each column carries
// its own observable bit, so a decode's output mask reports which error
// mechanisms the matching used. Repeated columns merge by the
// log-likelihood rule; the merged edge keeps the observable bit of the
// first such column only.
package checkmatrix
