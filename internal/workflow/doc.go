// Package workflow drives the RDFMap project pipeline: upload data and
// ontology files, generate a mapping, convert to RDF, and download the
// result. It validates user input before touching the network and normalizes
// the server's variant response shapes into one view.
package workflow
