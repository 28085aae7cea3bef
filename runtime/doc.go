// Package binarycookies decodes Apple's binary cookie files
// (Cookies.binarycookies, as written by Safari and by NSHTTPCookieStorage)
// and renders the decoded cookies as JSON, CBOR, MessagePack, YAML or a
// Netscape cookies.txt listing.
//
// A file is a "cook" header, a big-endian table of page sizes, the pages,
// and a trailer holding a checksum, a footer tag and an opaque property
// list. Each page holds a little-endian table of record offsets followed
// by the records; a record is a fixed header whose string fields are
// addressed by offsets into the NUL-terminated tail of the record.
//
// The input is treated as untrusted. Every offset read from the file is
// checked against the enclosing region before it is dereferenced, and
// decoding stops at the first violation with a *DecodeError classifying
// it. Nothing is returned on failure.
//
// Timestamps are kept as seconds relative to the Mac absolute time epoch
// (2001-01-01T00:00:00Z). Only the Netscape renderer converts them.
package binarycookies
