package cmd

// ParseNonces exposes nonce argument parsing to tests.
var ParseNonces = parseNonces
