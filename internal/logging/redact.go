// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package logging

// SanitizeSessionID masks a session ID, keeping the first and last four characters.
// Session ids act as bearer tokens for a shopper's likes.
//
//	"3f2b9c1e-77aa-4d6e" -> "3f2b...4d6e"
func SanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if len(sessionID) <= 12 {
		return "***"
	}
	return sessionID[:4] + "..." + sessionID[len(sessionID)-4:]
}
