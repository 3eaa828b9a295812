// Package metadata validates sidecar documents against the dual-profile
// schema.
//
// A sidecar is a JSON object. Validation happens in two stages:
//
//  1. Profile detection: the document's field set must exactly equal
//     one profile's field set (light is tried first). No match is a
//     single profile issue naming the missing and unexpected fields
//     relative to the nearest profile, and no field checks run, since
//     field typing is meaningless without a profile.
//  2. Field kind checks: every field of the detected profile is checked
//     against its configured kind. All violations are collected.
//
// The package never touches the filesystem. Pairing a sidecar with its
// subject is the scanner's concern; reading bytes is the caller's.
package metadata
