// Package mappingdoc parses RDFMap mapping documents. A mapping document is
// YAML describing how sheets of a tabular source map onto ontology terms:
// each sheet names a row class and a column table, and a column counts as
// mapped only when its entry is a block carrying an "as" target.
package mappingdoc
