package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const gameIDSpace = 99999999

// GenerateGameID - generates a short numeric identifier for a game session.
func GenerateGameID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(gameIDSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return n.String(), nil
}

// GeneratePlayerID - generates a unique identifier for a player session.
func GeneratePlayerID() string {
	return uuid.NewString()
}
