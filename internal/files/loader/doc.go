// Package loader turns scanned sidecar files into validated records.
//
// Both the tree checker and the registry builder need the same steps for
// every sidecar a scan finds: pair it with its subject, read its bytes
// and run the metadata validator. The loader owns those steps so the two
// passes cannot drift apart. Per-file problems (missing subject,
// unreadable or malformed sidecar, schema violations) are recorded as
// issues on the returned records; nothing here aborts a pass.
package loader
