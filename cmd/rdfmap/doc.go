// Command rdfmap is the CLI for the RDFMap conversion service. It walks a
// project through the full pipeline: create, upload data and ontology files,
// generate a column-to-ontology mapping, convert to RDF (inline or as a
// background job), and download the result.
package main
