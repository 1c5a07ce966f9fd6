// Package chests implements the CityChests registry: a single Config record
// naming the admin and the vault, and one MintRecord per (recipient, client
// nonce) pair, each stored at an address derived from the program id.
//
// A record is created pending by the admin and confirmed once the admin shows
// that the vault holds exactly one unit of the freshly minted asset.
package chests
