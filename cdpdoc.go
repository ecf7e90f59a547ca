// Package cdpdoc answers questions about customer-data-platform products
// (Segment, mParticle, Lytics, Zeotap) from their crawled documentation.
// It crawls vendor docs into classified documents, indexes them with a
// lexical TF-IDF model, and routes questions to either a ranked lookup or a
// cross-platform feature comparison.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/) or the
// concern they own (e.g., crawl/, search/, cache/).
package cdpdoc
