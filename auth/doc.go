// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles voter credentials and tokens.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, attempt) // ErrInvalidCredentials on mismatch

# Voter Tokens

A voter token is the voter ID plus an HMAC-SHA256 signature keyed with
VOTER_TOKEN_SALT:

	token := auth.GenerateVoterToken(voterID, salt)
	voterID, err := auth.ParseVoterToken(token, salt)

Tokens are deterministic, so logging in twice yields the same token.
Rotating the salt invalidates every issued token.

Clients send the token in the X-Voter-Token header.
*/
package auth
