// Copyright (c) 2026 Ledgerline. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password validates
against the original and rejects everything else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_EmptyInput confirms the empty string is a valid input:
it hashes, verifies against itself, and nothing else verifies against it.
*/
func TestHashPassword_EmptyInput(t *testing.T) {
	hash, err := sec.HashPassword("")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("", hash))
	assert.False(t, sec.CheckPasswordHash("anything", hash))
}

/*
TestHashPassword_SaltedDigests verifies two hashes of the same input
differ (bcrypt salts every digest) while both still validate.
*/
func TestHashPassword_SaltedDigests(t *testing.T) {
	first, err := sec.HashPassword("same input")
	require.NoError(t, err)
	second, err := sec.HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same input", first))
	assert.True(t, sec.CheckPasswordHash("same input", second))
}

/*
TestCheckPasswordHash_InvalidDigest ensures a corrupted stored digest
never validates.
*/
func TestCheckPasswordHash_InvalidDigest(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("password", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPasswordHash("password", ""))
}
