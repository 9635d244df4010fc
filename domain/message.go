// Package domain contains core concepts of the player exchange.
// This file defines the message payload rules.
package domain

import "strconv"

// DefaultSeed is the initiator's first payload when none is supplied.
const DefaultSeed = "Chit_Chat"

// NextPayload appends the sender's running send tally to the received payload.
func NextPayload(received string, sent int) string {
	return received + strconv.Itoa(sent)
}

// SeedOrDefault returns seed, or DefaultSeed when seed is empty.
func SeedOrDefault(seed string) string {
	if seed == "" {
		return DefaultSeed
	}
	return seed
}
