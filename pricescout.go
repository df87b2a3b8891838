// Package pricescout extracts product name, price and availability from
// product detail pages of several e-commerce site templates and reports the
// results of each batch as text or as tabular rows.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package pricescout
