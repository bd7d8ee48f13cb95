// SPDX-License-Identifier: EPL-2.0

// Package matrix synthesizes default send channel-mix matrices for the
// engine's {1..8}x{1..8} source/destination channel count combinations.
//
// The original engine ships these as a static precomputed table; that
// table's contents were not available to generate from, so this package
// computes defaults algorithmically instead: identity passthrough when
// channel counts match, a mono source broadcast at full level to every
// destination channel, every source channel averaged into a mono
// destination, and otherwise channel i to channel i over the overlap with
// the remaining channels silent. Clients
// needing exact parity with another engine's defaults should override via
// their own send configuration, as the API always allows.
package matrix
