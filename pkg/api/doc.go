// Package api defines the request and response messages of the CircleCare
// RPC services. Messages travel as JSON over the Connect protocol.
//
// Amounts are microSTX. Heights are block heights.
package api
