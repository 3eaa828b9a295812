// Package report renders pass results for humans and machines.
//
// Every result type has two renderings: styled text for terminals and
// indented JSON for pipelines. The JSON encodings are the public result
// types themselves, so scripting against the CLI means scripting
// against pkg/nomen.
package report
