package infra

import "context"

// ChallengeVerifier checks a bot-challenge token. A nil error with false
// means the provider rejected the token.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

var _ ChallengeVerifier = (*TurnstileClient)(nil)
