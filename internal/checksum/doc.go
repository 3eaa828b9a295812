// Package checksum provides content hashing for registry entries.
//
// Subjects are content-addressed by the SHA-256 of their exact bytes.
// There is no normalization: the registry answers "did these bytes
// change", and any rewrite of a subject is a change by definition.
//
// # Example Usage
//
//	calculator := checksum.New()
//	hash := calculator.Sum(fileContent)
//	hash, err := calculator.SumReader(f)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
