// Package core provides the catalog loading and search logic.
//
// This package contains all domain logic independent of any UI or transport
// layer. It is used by the HTTP server, the catalogctl CLI and tests alike.
//
// # Catalogs
//
// A catalog is a spreadsheet registered under a short key. Definitions are
// registered at init time with [Register] (see package catalogs) and handed to
// [NewService]:
//
//	core.Register(core.CatalogDefinition{Key: "engines", Label: "Engines", File: "engines.xlsx"})
//
// # Loading
//
// [LoadTable] reads every sheet of a workbook, tags each row with the source
// label and sheet name, and concatenates the sheets into one immutable [Table].
// [Service.Refresh] installs a freshly loaded table in the [Store]; a failed
// load leaves the previous table untouched.
//
// # Search
//
// [Normalize] canonicalizes a value to lowercase ASCII letters and digits.
// [Filter] keeps rows where any non-meta column contains the normalized query,
// and [Paginate] cuts the requested page out of the matches.
//
// # Error Handling
//
// Failures wrap the sentinels in errors.go. [MapError] turns them into
// user-facing messages with support codes (FILE, CAT, REQ, UPL, RATE).
package core
